package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manualdex/manualdex"
)

// Compile-time interface verification.
var _ manualdex.ConversationService = (*ConversationService)(nil)

// ConversationService implements manualdex.ConversationService using SQLite.
type ConversationService struct {
	db *DB
}

// NewConversationService creates a new ConversationService.
func NewConversationService(db *DB) *ConversationService {
	return &ConversationService{db: db}
}

// CreateConversation creates a new conversation.
func (s *ConversationService) CreateConversation(ctx context.Context, conv *manualdex.Conversation) error {
	if err := conv.Validate(); err != nil {
		return err
	}

	conv.ID = uuid.New().String()
	conv.CreatedAt = time.Now().UTC()
	conv.UpdatedAt = conv.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, conv.ID, conv.Title, conv.CreatedAt.Format(time.RFC3339), conv.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindConversationByID retrieves a conversation by ID.
func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*manualdex.Conversation, error) {
	var conv manualdex.Conversation
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, updated_at
		FROM conversations
		WHERE id = ?
	`, id).Scan(&conv.ID, &conv.Title, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, manualdex.Errorf(manualdex.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return nil, err
	}

	if conv.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if conv.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &conv, nil
}

// FindConversations retrieves conversations matching the filter, most
// recently updated first.
func (s *ConversationService) FindConversations(ctx context.Context, filter manualdex.ConversationFilter) ([]*manualdex.Conversation, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, created_at, updated_at FROM conversations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY updated_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*manualdex.Conversation
	for rows.Next() {
		var conv manualdex.Conversation
		var createdAt, updatedAt string

		if err := rows.Scan(&conv.ID, &conv.Title, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if conv.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if conv.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		convs = append(convs, &conv)
	}

	return convs, rows.Err()
}

// DeleteConversation permanently removes a conversation. Its messages go
// with it via ON DELETE CASCADE.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return manualdex.Errorf(manualdex.ENOTFOUND, "conversation not found")
	}

	return nil
}

// CreateMessage appends a message to a conversation. The message's position
// is assigned as the next slot in the conversation, and the conversation's
// updated_at is bumped.
func (s *ConversationService) CreateMessage(ctx context.Context, msg *manualdex.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if _, err := s.FindConversationByID(ctx, msg.ConversationID); err != nil {
		return err
	}

	var next int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), -1) + 1 FROM messages WHERE conversation_id = ?
	`, msg.ConversationID).Scan(&next)
	if err != nil {
		return err
	}

	msg.ID = uuid.New().String()
	msg.Position = next
	msg.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Position, msg.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations SET updated_at = ? WHERE id = ?
	`, msg.CreatedAt.Format(time.RFC3339), msg.ConversationID)
	return err
}

// FindMessages retrieves a conversation's messages in turn order.
func (s *ConversationService) FindMessages(ctx context.Context, conversationID string) ([]*manualdex.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, position, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY position ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*manualdex.Message
	for rows.Next() {
		var msg manualdex.Message
		var createdAt string

		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Position, &createdAt); err != nil {
			return nil, err
		}

		if msg.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		msgs = append(msgs, &msg)
	}

	return msgs, rows.Err()
}
