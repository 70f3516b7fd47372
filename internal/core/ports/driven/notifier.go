package driven

import "github.com/custodia-labs/docket/internal/core/domain"

// Notifier delivers notifications to the UI layer.
// Notify must not block the caller for long.
type Notifier interface {
	Notify(n domain.Notification)
}
