package track

import (
	"testing"
	"time"

	"locatrack.io/locatrack/internal/backend"
)

const trackerLayout = "2006-01-02 15:04:05"

func objectReportedAt(t *testing.T, ts time.Time, speed float64) *backend.TrackedObject {
	t.Helper()

	return &backend.TrackedObject{
		IMEI:      "860000000000001",
		Speed:     speed,
		DTTracker: ts.UTC().Format(trackerLayout),
	}
}

func TestIsMovingBoundary(t *testing.T) {
	tests := []struct {
		speed float64
		want  bool
	}{
		{0, false},
		{4.9, false},
		{5, false},
		{5.0001, true},
		{42, true},
	}

	for _, tt := range tests {
		obj := &backend.TrackedObject{Speed: tt.speed}
		if got := IsMoving(obj); got != tt.want {
			t.Errorf("IsMoving(speed=%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestIsOnlineBoundary(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"fresh report", time.Minute, true},
		{"just inside the window", OnlineWindow - time.Second, true},
		{"exactly at the window", OnlineWindow, false},
		{"well past the window", 2 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := objectReportedAt(t, now.Add(-tt.age), 0)
			if got := IsOnline(obj, now); got != tt.want {
				t.Errorf("IsOnline(age=%s) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}
}

func TestIsOnlineWithoutReport(t *testing.T) {
	obj := &backend.TrackedObject{Speed: 90}

	if IsOnline(obj, time.Now()) {
		t.Error("device without a report timestamp counted as online")
	}
	if IsOnline(obj, time.Time{}) {
		t.Error("zero now still counted as online")
	}
}

func TestClassifyOfflinePrecedesMoving(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// A stale record that still looks fast must resolve to offline.
	stale := objectReportedAt(t, now.Add(-2*time.Hour), 120)
	if got := Classify(stale, now); got != StatusOffline {
		t.Errorf("Classify(stale fast object) = %q, want offline", got)
	}

	fresh := objectReportedAt(t, now.Add(-time.Minute), 120)
	if got := Classify(fresh, now); got != StatusMoving {
		t.Errorf("Classify(fresh fast object) = %q, want moving", got)
	}

	idle := objectReportedAt(t, now.Add(-time.Minute), 0)
	if got := Classify(idle, now); got != StatusStopped {
		t.Errorf("Classify(fresh idle object) = %q, want stopped", got)
	}
}

func TestTimeSinceUpdateBuckets(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		age  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{59 * time.Second, "just now"},
		{60 * time.Second, "1m ago"},
		{90 * time.Second, "1m ago"}, // floors, never rounds up
		{59 * time.Minute, "59m ago"},
		{time.Hour, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{49 * time.Hour, "2d ago"},
	}

	for _, tt := range tests {
		if got := TimeSinceUpdate(now.Add(-tt.age), now); got != tt.want {
			t.Errorf("TimeSinceUpdate(age=%s) = %q, want %q", tt.age, got, tt.want)
		}
	}
}
