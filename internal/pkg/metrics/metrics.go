package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PollTicksTotal counts polling controller fetches per target.
	PollTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locatrack_poll_ticks_total",
			Help: "Total number of polling fetches issued, by target and result.",
		},
		[]string{"target", "result"}, // result: success/failure
	)

	// TrackedObjects is the size of the latest GPS snapshot.
	TrackedObjects = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "locatrack_tracked_objects",
			Help: "Number of tracked objects in the latest GPS snapshot.",
		},
	)

	// MovingObjects is how many of those are currently classified as moving.
	MovingObjects = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "locatrack_moving_objects",
			Help: "Number of tracked objects currently classified as moving.",
		},
	)

	// UnreadMessages is the viewer's total unread message count.
	UnreadMessages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "locatrack_unread_messages",
			Help: "Total unread messages for the authenticated user.",
		},
	)
)

// The metrics are served by the monitor daemon's /metrics endpoint through
// the default registry.
func init() {
	prometheus.MustRegister(PollTicksTotal)
	prometheus.MustRegister(TrackedObjects)
	prometheus.MustRegister(MovingObjects)
	prometheus.MustRegister(UnreadMessages)
}
