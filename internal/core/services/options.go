package services

import (
	"time"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/identity"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// Option configures a service.
type Option func(*options)

type options struct {
	newID func() string
	now   func() time.Time
}

// WithIDGenerator replaces the identifier source.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithClock replaces the time source.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

func newOptions(opts []Option) options {
	o := options{
		newID: identity.NewID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// notify sends n when a notifier is configured.
func notify(n driven.Notifier, event domain.Notification) {
	if n != nil {
		n.Notify(event)
	}
}
