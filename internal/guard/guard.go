// Package guard decides whether a navigation renders or redirects, based on
// the session and the requested screen's allowed roles.
package guard

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"locatrack.io/locatrack/internal/backend"
	utilfsm "locatrack.io/locatrack/internal/pkg/util/fsm"
	"locatrack.io/locatrack/internal/session"
)

// Navigation states. Every resolution starts in loading and ends in exactly
// one of the three settled states.
const (
	StateLoading         = "loading"
	StateUnauthenticated = "unauthenticated"
	StateAuthorized      = "authorized"
	StateUnauthorized    = "unauthorized"
)

const (
	eventSettleAnonymous = "settle_anonymous"
	eventGrant           = "grant"
	eventDeny            = "deny"
)

// Decision is the outcome of resolving one navigation. Redirect is empty
// when the screen should render.
type Decision struct {
	State    string
	Redirect string
}

// Render reports whether the requested screen may be shown.
func (d Decision) Render() bool {
	return d.State == StateAuthorized
}

// newNavigationFSM builds the per-navigation state machine. The grant
// transition carries a role check; a disallowed role fails the transition
// so the resolution falls through to deny.
func newNavigationFSM(screen Screen, role backend.Role) *fsm.FSM {
	return fsm.NewFSM(
		StateLoading,
		fsm.Events{
			{Name: eventSettleAnonymous, Src: []string{StateLoading}, Dst: StateUnauthenticated},
			{Name: eventGrant, Src: []string{StateLoading}, Dst: StateAuthorized},
			{Name: eventDeny, Src: []string{StateLoading}, Dst: StateUnauthorized},
		},
		fsm.Callbacks{
			"before_" + eventGrant: utilfsm.WrapEvent(func(ctx context.Context, event *fsm.Event) error {
				if !Allows(screen, role) {
					return fmt.Errorf("role %q not allowed on screen %q", role, screen)
				}
				return nil
			}),
		},
	)
}

// Resolve maps the session and a requested screen to a Decision. While the
// session store has not settled, the decision stays loading and the caller
// must wait; nothing renders and nothing redirects before settlement.
func Resolve(snap session.Snapshot, screen Screen) Decision {
	if snap.Loading {
		return Decision{State: StateLoading}
	}

	ctx := context.Background()

	if snap.User == nil {
		m := newNavigationFSM(screen, "")
		_ = m.Event(ctx, eventSettleAnonymous)
		return Decision{State: m.Current(), Redirect: PathLogin}
	}

	m := newNavigationFSM(screen, snap.User.Role)
	if err := m.Event(ctx, eventGrant); err != nil {
		_ = m.Event(ctx, eventDeny)
		return Decision{State: m.Current(), Redirect: Landing(snap.User.Role)}
	}

	return Decision{State: m.Current()}
}
