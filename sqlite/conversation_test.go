package sqlite_test

import (
	"context"
	"testing"

	"github.com/manualdex/manualdex"
	"github.com/manualdex/manualdex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestConversation(t *testing.T, db *sqlite.DB, title string) *manualdex.Conversation {
	t.Helper()
	svc := sqlite.NewConversationService(db)
	conv := &manualdex.Conversation{Title: title}
	require.NoError(t, svc.CreateConversation(context.Background(), conv))
	return conv
}

func TestConversationService_CreateConversation(t *testing.T) {
	t.Parallel()

	t.Run("creates conversation with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversationService(db)
		ctx := context.Background()

		conv := &manualdex.Conversation{Title: "F28 on Vaillant ecoTEC"}

		err := svc.CreateConversation(ctx, conv)
		require.NoError(t, err)

		assert.NotEmpty(t, conv.ID, "ID should be generated")
		assert.False(t, conv.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.Equal(t, conv.CreatedAt, conv.UpdatedAt)
	})

	t.Run("returns error for invalid conversation", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversationService(db)

		err := svc.CreateConversation(context.Background(), &manualdex.Conversation{})
		require.Error(t, err)
		assert.Equal(t, manualdex.EINVALID, manualdex.ErrorCode(err))
	})
}

func TestConversationService_FindConversationByID(t *testing.T) {
	t.Parallel()

	t.Run("finds existing conversation", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		conv := createTestConversation(t, db, "boiler pressure drop")
		svc := sqlite.NewConversationService(db)

		found, err := svc.FindConversationByID(context.Background(), conv.ID)
		require.NoError(t, err)
		assert.Equal(t, conv.ID, found.ID)
		assert.Equal(t, "boiler pressure drop", found.Title)
	})

	t.Run("returns ENOTFOUND for missing conversation", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversationService(db)

		_, err := svc.FindConversationByID(context.Background(), "nonexistent")
		require.Error(t, err)
		assert.Equal(t, manualdex.ENOTFOUND, manualdex.ErrorCode(err))
	})
}

func TestConversationService_FindConversations(t *testing.T) {
	t.Parallel()

	t.Run("filters by title", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestConversation(t, db, "first")
		createTestConversation(t, db, "second")
		svc := sqlite.NewConversationService(db)

		title := "second"
		convs, err := svc.FindConversations(context.Background(), manualdex.ConversationFilter{Title: &title})
		require.NoError(t, err)
		require.Len(t, convs, 1)
		assert.Equal(t, "second", convs[0].Title)
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestConversation(t, db, "a")
		createTestConversation(t, db, "b")
		createTestConversation(t, db, "c")
		svc := sqlite.NewConversationService(db)

		convs, err := svc.FindConversations(context.Background(), manualdex.ConversationFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, convs, 2)
	})
}

func TestConversationService_DeleteConversation(t *testing.T) {
	t.Parallel()

	t.Run("deletes conversation and cascades to messages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		conv := createTestConversation(t, db, "to delete")
		svc := sqlite.NewConversationService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateMessage(ctx, &manualdex.Message{
			ConversationID: conv.ID,
			Role:           manualdex.RoleUser,
			Content:        "what does error 501 mean?",
		}))

		require.NoError(t, svc.DeleteConversation(ctx, conv.ID))

		_, err := svc.FindConversationByID(ctx, conv.ID)
		assert.Equal(t, manualdex.ENOTFOUND, manualdex.ErrorCode(err))

		msgs, err := svc.FindMessages(ctx, conv.ID)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("returns ENOTFOUND for missing conversation", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversationService(db)

		err := svc.DeleteConversation(context.Background(), "nonexistent")
		assert.Equal(t, manualdex.ENOTFOUND, manualdex.ErrorCode(err))
	})
}

func TestConversationService_CreateMessage(t *testing.T) {
	t.Parallel()

	t.Run("assigns sequential positions", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		conv := createTestConversation(t, db, "positions")
		svc := sqlite.NewConversationService(db)
		ctx := context.Background()

		first := &manualdex.Message{ConversationID: conv.ID, Role: manualdex.RoleUser, Content: "q1"}
		second := &manualdex.Message{ConversationID: conv.ID, Role: manualdex.RoleAssistant, Content: "a1"}
		third := &manualdex.Message{ConversationID: conv.ID, Role: manualdex.RoleUser, Content: "q2"}

		require.NoError(t, svc.CreateMessage(ctx, first))
		require.NoError(t, svc.CreateMessage(ctx, second))
		require.NoError(t, svc.CreateMessage(ctx, third))

		assert.Equal(t, 0, first.Position)
		assert.Equal(t, 1, second.Position)
		assert.Equal(t, 2, third.Position)
	})

	t.Run("returns error for invalid role", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		conv := createTestConversation(t, db, "roles")
		svc := sqlite.NewConversationService(db)

		err := svc.CreateMessage(context.Background(), &manualdex.Message{
			ConversationID: conv.ID,
			Role:           "system",
			Content:        "nope",
		})
		require.Error(t, err)
		assert.Equal(t, manualdex.EINVALID, manualdex.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing conversation", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversationService(db)

		err := svc.CreateMessage(context.Background(), &manualdex.Message{
			ConversationID: "nonexistent",
			Role:           manualdex.RoleUser,
			Content:        "hello",
		})
		assert.Equal(t, manualdex.ENOTFOUND, manualdex.ErrorCode(err))
	})

	t.Run("bumps conversation updated_at", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		conv := createTestConversation(t, db, "bump")
		svc := sqlite.NewConversationService(db)
		ctx := context.Background()

		msg := &manualdex.Message{ConversationID: conv.ID, Role: manualdex.RoleUser, Content: "q"}
		require.NoError(t, svc.CreateMessage(ctx, msg))

		found, err := svc.FindConversationByID(ctx, conv.ID)
		require.NoError(t, err)
		assert.False(t, found.UpdatedAt.Before(found.CreatedAt))
	})
}

func TestConversationService_FindMessages(t *testing.T) {
	t.Parallel()

	t.Run("returns messages in turn order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		conv := createTestConversation(t, db, "ordering")
		svc := sqlite.NewConversationService(db)
		ctx := context.Background()

		contents := []string{"q1", "a1", "q2", "a2"}
		roles := []string{manualdex.RoleUser, manualdex.RoleAssistant, manualdex.RoleUser, manualdex.RoleAssistant}
		for i := range contents {
			require.NoError(t, svc.CreateMessage(ctx, &manualdex.Message{
				ConversationID: conv.ID,
				Role:           roles[i],
				Content:        contents[i],
			}))
		}

		msgs, err := svc.FindMessages(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 4)
		for i, msg := range msgs {
			assert.Equal(t, contents[i], msg.Content)
			assert.Equal(t, roles[i], msg.Role)
			assert.Equal(t, i, msg.Position)
		}
	})

	t.Run("returns empty slice for unknown conversation", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversationService(db)

		msgs, err := svc.FindMessages(context.Background(), "nonexistent")
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}
