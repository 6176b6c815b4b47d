package manualdex

import (
	"context"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation groups the messages of one chat session.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the conversation contains invalid fields.
func (c *Conversation) Validate() error {
	if c.Title == "" {
		return Errorf(EINVALID, "conversation title required")
	}
	return nil
}

// Message is a single user or assistant turn in a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.ConversationID == "" {
		return Errorf(EINVALID, "message conversation ID required")
	}
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return Errorf(EINVALID, "message role must be %q or %q", RoleUser, RoleAssistant)
	}
	if m.Content == "" {
		return Errorf(EINVALID, "message content required")
	}
	return nil
}

// ConversationFilter represents a filter for FindConversations.
type ConversationFilter struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ConversationService manages persisted chat history.
type ConversationService interface {
	// CreateConversation creates a new conversation.
	CreateConversation(ctx context.Context, conv *Conversation) error

	// FindConversationByID retrieves a conversation by ID.
	// Returns ENOTFOUND if the conversation does not exist.
	FindConversationByID(ctx context.Context, id string) (*Conversation, error)

	// FindConversations retrieves conversations matching the filter.
	FindConversations(ctx context.Context, filter ConversationFilter) ([]*Conversation, error)

	// DeleteConversation permanently removes a conversation and its
	// messages. Returns ENOTFOUND if the conversation does not exist.
	DeleteConversation(ctx context.Context, id string) error

	// CreateMessage appends a message to a conversation.
	CreateMessage(ctx context.Context, msg *Message) error

	// FindMessages retrieves a conversation's messages in turn order.
	FindMessages(ctx context.Context, conversationID string) ([]*Message, error)
}
