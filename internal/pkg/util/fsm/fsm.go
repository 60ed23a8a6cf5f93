// Package fsm holds helpers around looplab/fsm.
package fsm

import (
	"context"

	"github.com/looplab/fsm"
)

// WrapEvent adapts an error-returning callback to a looplab fsm.Callback.
// A returned error is recorded on the event, which makes the transition fail
// and surfaces the error from fsm.Event.
func WrapEvent(fn func(ctx context.Context, event *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, event *fsm.Event) {
		if err := fn(ctx, event); err != nil {
			event.Err = err
		}
	}
}
