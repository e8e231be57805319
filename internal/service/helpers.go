package service

import (
	"time"

	"github.com/google/uuid"
)

// Option configures a service.
type Option func(*options)

type options struct {
	now      func() time.Time
	newID    func() string
	observer UseCaseObserver
}

func defaultOptions() options {
	return options{
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
		observer: NoopUseCaseObserver{},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs replaces uuid generation.
func WithIDs(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
