// Package messaging maintains the inbox view: the conversation list, the
// messages of the currently open conversation, and unread tracking.
package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/pkg/metrics"
	"locatrack.io/locatrack/internal/poll"
	"locatrack.io/locatrack/pkg/log"
)

// UnreadCountFor looks up the viewer's unread counter on a conversation.
// Conversations store one counter per participant; a missing entry means
// zero.
func UnreadCountFor(conv *backend.Conversation, viewerID string) int {
	if conv == nil || conv.UnreadCount == nil {
		return 0
	}

	return conv.UnreadCount[viewerID]
}

// Inbox is the messaging view model. One polling controller follows the
// open conversation; opening another conversation restarts it, which
// cancels the previous schedule before the new one begins.
type Inbox struct {
	client       *backend.Client
	logger       log.Logger
	conversation *poll.Controller
	background   *poll.Controller

	mu            sync.RWMutex
	conversations []backend.Conversation
	openID        string
	messages      []backend.Message
	unreadTotal   int
}

// NewInbox creates an inbox backed by the given client.
func NewInbox(client *backend.Client) *Inbox {
	return newInboxWithClock(client, clock.RealClock{})
}

func newInboxWithClock(client *backend.Client, c clock.WithTicker) *Inbox {
	return &Inbox{
		client:       client,
		logger:       log.WithName("inbox"),
		conversation: poll.NewWithClock("messages", c),
		background:   poll.NewWithClock("unread", c),
	}
}

// RefreshConversations reloads the conversation list, loudly.
func (i *Inbox) RefreshConversations(ctx context.Context) error {
	conversations, err := i.client.Conversations(ctx)
	if err != nil {
		return err
	}

	i.mu.Lock()
	i.conversations = conversations
	i.mu.Unlock()

	return nil
}

// Open selects a conversation and starts polling its messages at the given
// interval. The previous conversation's schedule, if any, is cancelled
// before the new one starts; at no point do two timers poll different
// conversations.
func (i *Inbox) Open(ctx context.Context, conversationID string, interval time.Duration) error {
	i.mu.Lock()
	i.openID = conversationID
	i.mu.Unlock()

	return i.conversation.Start(ctx, interval, i.refreshOpen)
}

// Close stops following the open conversation.
func (i *Inbox) Close() {
	i.conversation.Stop()

	i.mu.Lock()
	i.openID = ""
	i.messages = nil
	i.mu.Unlock()
}

// Send appends a message to the open conversation and refreshes both the
// thread and the conversation list. This is a user action: every failure
// comes back to the caller.
func (i *Inbox) Send(ctx context.Context, content string) error {
	i.mu.RLock()
	conversationID := i.openID
	i.mu.RUnlock()

	if conversationID == "" {
		return fmt.Errorf("no conversation is open")
	}

	if _, err := i.client.SendMessage(ctx, conversationID, content); err != nil {
		return err
	}

	if err := i.refreshOpen(ctx); err != nil {
		return err
	}

	return i.RefreshConversations(ctx)
}

// StartConversation opens (or finds) a thread with another user and makes
// it the followed conversation.
func (i *Inbox) StartConversation(ctx context.Context, participantID string, interval time.Duration) (*backend.Conversation, error) {
	conv, err := i.client.CreateConversation(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if err := i.Open(ctx, conv.ID, interval); err != nil {
		// The conversation exists; a failed first fetch only means the
		// thread view is stale until the next tick.
		i.logger.Warn("initial message fetch failed", "reason", backend.FormatError(err))
	}

	return conv, nil
}

// Start runs the daemon-mode background refresh: conversation list plus
// unread total, on one silent schedule. Blocks until ctx is cancelled.
func (i *Inbox) Start(ctx context.Context, interval time.Duration) error {
	if err := i.background.Start(ctx, interval, i.refreshBackground); err != nil {
		i.logger.Warn("initial inbox refresh failed", "reason", backend.FormatError(err))
	}
	i.logger.Info("inbox polling started", "interval", interval)

	<-ctx.Done()
	i.background.Stop()
	i.conversation.Stop()

	return nil
}

// SetInterval restarts the background schedule with a new interval.
func (i *Inbox) SetInterval(ctx context.Context, interval time.Duration) {
	i.logger.Info("inbox poll interval changed", "interval", interval)
	if err := i.background.Start(ctx, interval, i.refreshBackground); err != nil {
		i.logger.Warn("inbox refresh failed on interval change", "reason", backend.FormatError(err))
	}
}

// Conversations returns a copy of the conversation list.
func (i *Inbox) Conversations() []backend.Conversation {
	i.mu.RLock()
	defer i.mu.RUnlock()

	conversations := make([]backend.Conversation, len(i.conversations))
	copy(conversations, i.conversations)

	return conversations
}

// Messages returns a copy of the open conversation's messages.
func (i *Inbox) Messages() []backend.Message {
	i.mu.RLock()
	defer i.mu.RUnlock()

	messages := make([]backend.Message, len(i.messages))
	copy(messages, i.messages)

	return messages
}

// OpenID returns the id of the followed conversation, or "".
func (i *Inbox) OpenID() string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.openID
}

// UnreadTotal returns the last fetched unread total.
func (i *Inbox) UnreadTotal() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.unreadTotal
}

// refreshOpen reloads the open conversation's messages. The snapshot is
// replaced wholesale, and a late response for a conversation that is no
// longer open is discarded rather than applied to the wrong thread.
func (i *Inbox) refreshOpen(ctx context.Context) error {
	i.mu.RLock()
	conversationID := i.openID
	i.mu.RUnlock()

	if conversationID == "" {
		return nil
	}

	messages, err := i.client.ConversationMessages(ctx, conversationID)
	if err != nil {
		return err
	}

	i.mu.Lock()
	if i.openID == conversationID {
		i.messages = messages
	}
	i.mu.Unlock()

	return nil
}

func (i *Inbox) refreshBackground(ctx context.Context) error {
	if err := i.RefreshConversations(ctx); err != nil {
		return err
	}

	total, err := i.client.UnreadCount(ctx)
	if err != nil {
		return err
	}

	i.mu.Lock()
	i.unreadTotal = total
	i.mu.Unlock()

	metrics.UnreadMessages.Set(float64(total))

	return nil
}
