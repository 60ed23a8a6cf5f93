package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	clocktesting "k8s.io/utils/clock/testing"

	"locatrack.io/locatrack/internal/backend"
)

func TestUnreadCountFor(t *testing.T) {
	conv := &backend.Conversation{
		ID:          "conv-1",
		UnreadCount: map[string]int{"user-a": 3},
	}

	tests := []struct {
		name   string
		conv   *backend.Conversation
		viewer string
		want   int
	}{
		{"counted viewer", conv, "user-a", 3},
		{"viewer without an entry", conv, "user-b", 0},
		{"nil counter map", &backend.Conversation{ID: "conv-2"}, "user-a", 0},
		{"nil conversation", nil, "user-a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnreadCountFor(tt.conv, tt.viewer); got != tt.want {
				t.Errorf("UnreadCountFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

// messagingBackend serves the message endpoints with per-conversation
// threads and records which threads were fetched.
type messagingBackend struct {
	mu      sync.Mutex
	threads map[string][]backend.Message
	fetched []string
	sent    []string
}

func (b *messagingBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/messages/conversations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]backend.Conversation{
			{ID: "conv-1", Participants: []string{"user-a", "user-b"}},
			{ID: "conv-2", Participants: []string{"user-a", "user-c"}},
		})
	})
	mux.HandleFunc("/api/messages/conversations/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/messages/conversations/")

		b.mu.Lock()
		b.fetched = append(b.fetched, id)
		thread := b.threads[id]
		b.mu.Unlock()

		json.NewEncoder(w).Encode(thread)
	})
	mux.HandleFunc("/api/messages/send", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ConversationID string `json:"conversation_id"`
			Content        string `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		msg := backend.Message{ID: "msg-new", ConversationID: req.ConversationID, Content: req.Content}

		b.mu.Lock()
		b.sent = append(b.sent, req.Content)
		b.threads[req.ConversationID] = append(b.threads[req.ConversationID], msg)
		b.mu.Unlock()

		json.NewEncoder(w).Encode(msg)
	})
	mux.HandleFunc("/api/messages/unread-count", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"unread_count": 7})
	})

	return mux
}

func (b *messagingBackend) fetchedThreads() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.fetched))
	copy(out, b.fetched)

	return out
}

func newTestInbox(t *testing.T, fc *clocktesting.FakeClock) (*Inbox, *messagingBackend) {
	t.Helper()

	be := &messagingBackend{threads: map[string][]backend.Message{
		"conv-1": {{ID: "msg-1", ConversationID: "conv-1", Content: "bonjour"}},
		"conv-2": {{ID: "msg-2", ConversationID: "conv-2", Content: "salut"}},
	}}

	srv := httptest.NewServer(be.handler())
	t.Cleanup(srv.Close)

	client := backend.NewWithBaseURL(srv.URL, time.Second)

	return newInboxWithClock(client, fc), be
}

func TestOpenFetchesThreadImmediately(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	inbox, _ := newTestInbox(t, fc)
	defer inbox.Close()

	if err := inbox.Open(context.Background(), "conv-1", 3*time.Second); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	msgs := inbox.Messages()
	if len(msgs) != 1 || msgs[0].ID != "msg-1" {
		t.Errorf("Messages() = %+v, want the conv-1 thread", msgs)
	}
	if inbox.OpenID() != "conv-1" {
		t.Errorf("OpenID() = %q, want conv-1", inbox.OpenID())
	}
}

func TestOpenSwitchesTarget(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	inbox, be := newTestInbox(t, fc)
	defer inbox.Close()

	ctx := context.Background()
	if err := inbox.Open(ctx, "conv-1", 3*time.Second); err != nil {
		t.Fatalf("Open conv-1 failed: %v", err)
	}
	if err := inbox.Open(ctx, "conv-2", 3*time.Second); err != nil {
		t.Fatalf("Open conv-2 failed: %v", err)
	}

	msgs := inbox.Messages()
	if len(msgs) != 1 || msgs[0].ConversationID != "conv-2" {
		t.Fatalf("Messages() = %+v, want the conv-2 thread", msgs)
	}

	// The first conversation's schedule was cancelled: every fetch after
	// the switch targets conv-2 only.
	fc.Step(3 * time.Second)
	waitForThreads(t, be, func(ids []string) bool { return len(ids) >= 3 })

	for _, id := range be.fetchedThreads()[2:] {
		if id != "conv-2" {
			t.Errorf("fetched %q after switching to conv-2", id)
		}
	}
}

func TestLateResponseForPreviousThreadIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	requested := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested <- struct{}{}
		<-release
		json.NewEncoder(w).Encode([]backend.Message{
			{ID: "msg-1", ConversationID: "conv-1", Content: "en retard"},
		})
	}))
	defer srv.Close()

	client := backend.NewWithBaseURL(srv.URL, 5*time.Second)
	inbox := newInboxWithClock(client, clocktesting.NewFakeClock(time.Now()))

	inbox.mu.Lock()
	inbox.openID = "conv-1"
	inbox.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- inbox.refreshOpen(context.Background()) }()
	<-requested

	// The selection moves while the conv-1 response is still in flight.
	inbox.mu.Lock()
	inbox.openID = "conv-2"
	inbox.mu.Unlock()

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("refreshOpen failed: %v", err)
	}

	if got := inbox.Messages(); len(got) != 0 {
		t.Errorf("late conv-1 response applied to the conv-2 view: %+v", got)
	}
}

func TestSendAppendsAndRefreshes(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	inbox, be := newTestInbox(t, fc)
	defer inbox.Close()

	ctx := context.Background()
	if err := inbox.Open(ctx, "conv-1", 3*time.Second); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := inbox.Send(ctx, "on arrive"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	be.mu.Lock()
	sent := append([]string(nil), be.sent...)
	be.mu.Unlock()
	if len(sent) != 1 || sent[0] != "on arrive" {
		t.Fatalf("backend recorded sends %v, want [on arrive]", sent)
	}

	msgs := inbox.Messages()
	if len(msgs) != 2 || msgs[1].Content != "on arrive" {
		t.Errorf("thread after Send = %+v, want the new message appended", msgs)
	}
	if len(inbox.Conversations()) != 2 {
		t.Error("conversation list not refreshed after Send")
	}
}

func TestSendWithoutOpenConversation(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	inbox, be := newTestInbox(t, fc)

	if err := inbox.Send(context.Background(), "perdu"); err == nil {
		t.Fatal("Send without an open conversation returned nil error")
	}
	if len(be.fetchedThreads()) != 0 {
		t.Error("Send without an open conversation hit the backend")
	}
}

func TestBackgroundRefreshUpdatesUnreadTotal(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	inbox, _ := newTestInbox(t, fc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		inbox.Start(ctx, 3*time.Second)
	}()

	waitFor(t, func() bool { return inbox.UnreadTotal() == 7 })
	if len(inbox.Conversations()) != 2 {
		t.Errorf("Conversations() has %d entries, want 2", len(inbox.Conversations()))
	}

	cancel()
	<-done
}

func TestCloseClearsThread(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	inbox, _ := newTestInbox(t, fc)

	if err := inbox.Open(context.Background(), "conv-1", 3*time.Second); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	inbox.Close()

	if inbox.OpenID() != "" {
		t.Errorf("OpenID() = %q after Close, want empty", inbox.OpenID())
	}
	if len(inbox.Messages()) != 0 {
		t.Error("Messages() not cleared by Close")
	}
}

func waitForThreads(t *testing.T, be *messagingBackend, cond func([]string) bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond(be.fetchedThreads()) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("thread fetches never satisfied condition; got %v", be.fetchedThreads())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not reached in time")
}
