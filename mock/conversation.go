package mock

import (
	"context"

	"github.com/manualdex/manualdex"
)

var _ manualdex.ConversationService = (*ConversationService)(nil)

// ConversationService is a mock implementation of manualdex.ConversationService.
type ConversationService struct {
	CreateConversationFn   func(ctx context.Context, conv *manualdex.Conversation) error
	FindConversationByIDFn func(ctx context.Context, id string) (*manualdex.Conversation, error)
	FindConversationsFn    func(ctx context.Context, filter manualdex.ConversationFilter) ([]*manualdex.Conversation, error)
	DeleteConversationFn   func(ctx context.Context, id string) error
	CreateMessageFn        func(ctx context.Context, msg *manualdex.Message) error
	FindMessagesFn         func(ctx context.Context, conversationID string) ([]*manualdex.Message, error)
}

func (s *ConversationService) CreateConversation(ctx context.Context, conv *manualdex.Conversation) error {
	return s.CreateConversationFn(ctx, conv)
}

func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*manualdex.Conversation, error) {
	return s.FindConversationByIDFn(ctx, id)
}

func (s *ConversationService) FindConversations(ctx context.Context, filter manualdex.ConversationFilter) ([]*manualdex.Conversation, error) {
	return s.FindConversationsFn(ctx, filter)
}

func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	return s.DeleteConversationFn(ctx, id)
}

func (s *ConversationService) CreateMessage(ctx context.Context, msg *manualdex.Message) error {
	return s.CreateMessageFn(ctx, msg)
}

func (s *ConversationService) FindMessages(ctx context.Context, conversationID string) ([]*manualdex.Message, error) {
	return s.FindMessagesFn(ctx, conversationID)
}
