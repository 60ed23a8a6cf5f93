package backend

import "context"

type sendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type createConversationRequest struct {
	ParticipantID string `json:"participant_id"`
}

// Conversations lists the caller's conversations, most recent first.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	if err := c.get(ctx, "/messages/conversations", nil, &conversations); err != nil {
		return nil, err
	}

	return conversations, nil
}

// ConversationMessages lists all messages of one conversation in creation
// order. Fetching also marks the conversation read for the caller on the
// backend side, so a poll tick doubles as a read receipt.
func (c *Client) ConversationMessages(ctx context.Context, conversationID string) ([]Message, error) {
	var messages []Message
	if err := c.get(ctx, "/messages/conversations/"+conversationID, nil, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// SendMessage appends a message to a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID, content string) (*Message, error) {
	var message Message
	req := sendMessageRequest{ConversationID: conversationID, Content: content}
	if err := c.post(ctx, "/messages/send", req, &message); err != nil {
		return nil, err
	}

	return &message, nil
}

// CreateConversation opens a conversation with another user, returning the
// existing one when the pair already has a thread.
func (c *Client) CreateConversation(ctx context.Context, participantID string) (*Conversation, error) {
	var conversation Conversation
	req := createConversationRequest{ParticipantID: participantID}
	if err := c.post(ctx, "/messages/conversations", req, &conversation); err != nil {
		return nil, err
	}

	return &conversation, nil
}

// UnreadCount returns the caller's total unread message count.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.get(ctx, "/messages/unread-count", nil, &out); err != nil {
		return 0, err
	}

	return out.UnreadCount, nil
}

// ChatUsers lists the identities the caller may start a conversation with.
func (c *Client) ChatUsers(ctx context.Context) ([]ChatUser, error) {
	var users []ChatUser
	if err := c.get(ctx, "/messages/users", nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}
