package render

import (
	"strings"
	"testing"
	"time"

	"locatrack.io/locatrack/internal/backend"
)

func TestTrackedObjectsColumns(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	objects := []backend.TrackedObject{
		{
			IMEI:        "860000000000001",
			Name:        "Clio 4",
			PlateNumber: "1234-A-56",
			Speed:       72,
			Lat:         33.58923,
			Lng:         -7.60315,
			DTTracker:   now.Add(-90 * time.Second).Format("2006-01-02 15:04:05"),
		},
		{IMEI: "860000000000002", Name: "Duster"},
	}

	var sb strings.Builder
	TrackedObjects(&sb, objects, now)
	out := sb.String()

	for _, want := range []string{"Clio 4", "1234-A-56", "moving", "72 km/h", "1m ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// No report timestamp: offline, and never pretends to have a time.
	if !strings.Contains(out, "offline") || !strings.Contains(out, "never") {
		t.Errorf("device without a report not rendered as offline/never:\n%s", out)
	}
}

func TestTrackedObjectDetailParams(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	obj := &backend.TrackedObject{
		IMEI: "860000000000001",
		Name: "Clio 4",
		Params: map[string]any{
			"bat":  float64(87),
			"door": true,
		},
	}

	var sb strings.Builder
	TrackedObjectDetail(&sb, obj, now)
	out := sb.String()

	if !strings.Contains(out, "bat:") || !strings.Contains(out, "87") {
		t.Errorf("numeric param not rendered:\n%s", out)
	}
	if !strings.Contains(out, "door:") || !strings.Contains(out, "true") {
		t.Errorf("bool param not rendered:\n%s", out)
	}
}

func TestConversationsUnreadColumn(t *testing.T) {
	conversations := []backend.Conversation{
		{
			ID:               "conv-1",
			Participants:     []string{"me", "them"},
			ParticipantNames: []string{"Moi", "Karim Alaoui"},
			LastMessage:      "la voiture est prête",
			UnreadCount:      map[string]int{"me": 2},
		},
		{
			ID:               "conv-2",
			Participants:     []string{"me", "other"},
			ParticipantNames: []string{"Moi", "Sara B"},
		},
	}

	var sb strings.Builder
	Conversations(&sb, conversations, "me")
	out := sb.String()

	if !strings.Contains(out, "Karim Alaoui") {
		t.Errorf("other participant name missing:\n%s", out)
	}
	if !strings.Contains(out, "2") {
		t.Errorf("unread count missing:\n%s", out)
	}

	// conv-2 has no counter entry for the viewer: the column stays blank.
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "conv-2") && strings.Contains(line, "0") {
			t.Errorf("zero unread rendered as a number: %q", line)
		}
	}
}

func TestMessagesLabelsOwnMessages(t *testing.T) {
	messages := []backend.Message{
		{SenderID: "me", SenderName: "Moi", Content: "bonjour", CreatedAt: time.Now()},
		{SenderID: "them", SenderName: "Karim Alaoui", Content: "salam", CreatedAt: time.Now()},
	}

	var sb strings.Builder
	Messages(&sb, messages, "me")
	out := sb.String()

	if !strings.Contains(out, "me") {
		t.Errorf("own message not labelled:\n%s", out)
	}
	if !strings.Contains(out, "Karim Alaoui") {
		t.Errorf("sender name missing:\n%s", out)
	}
}
