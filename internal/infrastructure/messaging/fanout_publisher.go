package messaging

import (
	"context"
	"errors"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"
)

// FanoutPublisher delivers each event to every sink, even when an earlier one fails.
type FanoutPublisher struct {
	sinks []interfaces.IEventPublisher
}

var _ interfaces.IEventPublisher = (*FanoutPublisher)(nil)

// NewFanoutPublisher skips nil sinks.
func NewFanoutPublisher(sinks ...interfaces.IEventPublisher) *FanoutPublisher {
	f := &FanoutPublisher{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *FanoutPublisher) Publish(ctx context.Context, evt entities.LifecycleEvent) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
