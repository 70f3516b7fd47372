package memory

import (
	"sync"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// Notifier records notifications in memory.
type Notifier struct {
	mu     sync.Mutex
	events []domain.Notification
}

// NewNotifier creates an empty recorder.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify records n.
func (n *Notifier) Notify(event domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns the recorded notifications in order.
func (n *Notifier) Events() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.events...)
}

// Last returns the most recent notification.
func (n *Notifier) Last() (domain.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return domain.Notification{}, false
	}
	return n.events[len(n.events)-1], true
}
