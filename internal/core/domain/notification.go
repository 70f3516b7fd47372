package domain

// NotificationLevel classifies a user-facing notification.
type NotificationLevel string

// Notification levels.
const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationError   NotificationLevel = "error"
)

// Notification is an observable event for the UI layer.
// It replaces exceptions for recoverable failures.
type Notification struct {
	Level   NotificationLevel
	Message string

	// Err is the cause for error notifications.
	Err error
}

// Success builds a success notification.
func Success(message string) Notification {
	return Notification{Level: NotificationSuccess, Message: message}
}

// Info builds an informational notification.
func Info(message string) Notification {
	return Notification{Level: NotificationInfo, Message: message}
}

// Failure builds an error notification.
func Failure(message string, err error) Notification {
	return Notification{Level: NotificationError, Message: message, Err: err}
}
