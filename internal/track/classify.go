// Package track maintains the live GPS view: a polled snapshot of tracked
// objects and the pure classifiers derived from it.
package track

import (
	"fmt"
	"time"

	"locatrack.io/locatrack/internal/backend"
)

// MovingSpeedThreshold is the speed in km/h above which a device counts as
// moving. At exactly the threshold it does not.
const MovingSpeedThreshold = 5.0

// OnlineWindow is how recently a device must have reported to count as
// online. At exactly the window boundary it is offline.
const OnlineWindow = 30 * time.Minute

// Status is the display classification of a tracked object.
type Status string

const (
	StatusMoving  Status = "moving"
	StatusStopped Status = "stopped"
	StatusOffline Status = "offline"
)

// IsMoving reports whether the device's reported speed exceeds the
// threshold. It deliberately ignores report freshness; see Classify for the
// offline-first precedence.
func IsMoving(obj *backend.TrackedObject) bool {
	return obj.Speed > MovingSpeedThreshold
}

// IsOnline reports whether the device reported within the online window.
// A device that never reported, or whose timestamp cannot be parsed, is
// offline no matter what now is.
func IsOnline(obj *backend.TrackedObject, now time.Time) bool {
	last, ok := obj.LastReport()
	if !ok {
		return false
	}

	return now.Sub(last) < OnlineWindow
}

// Classify resolves the display status. Offline is checked first: a stale
// record that still carries a high speed must show offline, not moving.
func Classify(obj *backend.TrackedObject, now time.Time) Status {
	if !IsOnline(obj, now) {
		return StatusOffline
	}

	if IsMoving(obj) {
		return StatusMoving
	}

	return StatusStopped
}

// TimeSinceUpdate renders the age of a report as a human bucket, flooring
// at each tier: "just now" under a minute, then minutes, hours, days.
func TimeSinceUpdate(last, now time.Time) string {
	d := now.Sub(last)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
