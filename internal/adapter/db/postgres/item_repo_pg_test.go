package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"account-item-service/internal/domain/item"
	apperrors "account-item-service/pkg/errors"
)

func TestItemRepoPG_Create(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	created, err := repo.Create(ctx, &item.Item{
		Title:       "Milk",
		Description: "2%",
		OwnerID:     "owner-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Milk", created.Title)
	assert.Equal(t, "2%", created.Description)
	assert.Equal(t, "owner-1", created.OwnerID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestItemRepoPG_Create_EmptyDescription(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	created, err := repo.Create(ctx, &item.Item{Title: "Eggs", OwnerID: "owner-1"})

	require.NoError(t, err)
	assert.Equal(t, "", created.Description)
}

func TestItemRepoPG_ListByOwner_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	// Spread the inserts out so created_at ordering is deterministic.
	first, err := repo.Create(ctx, &item.Item{Title: "first", OwnerID: "owner-1"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := repo.Create(ctx, &item.Item{Title: "second", OwnerID: "owner-1"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	third, err := repo.Create(ctx, &item.Item{Title: "third", OwnerID: "owner-1"})
	require.NoError(t, err)

	items, err := repo.ListByOwner(ctx, "owner-1")

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, third.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, first.ID, items[2].ID)
}

func TestItemRepoPG_ListByOwner_IsolatedPerOwner(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	_, err := repo.Create(ctx, &item.Item{Title: "mine", OwnerID: "owner-1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &item.Item{Title: "theirs", OwnerID: "owner-2"})
	require.NoError(t, err)

	items, err := repo.ListByOwner(ctx, "owner-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mine", items[0].Title)
}

func TestItemRepoPG_ListByOwner_UnknownOwnerIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	items, err := repo.ListByOwner(ctx, "no-such-owner")

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemRepoPG_Update(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	created, err := repo.Create(ctx, &item.Item{Title: "Milk", Description: "2%", OwnerID: "owner-1"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	updated, err := repo.Update(ctx, created.ID, "Milk", "Whole")

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Whole", updated.Description)
	assert.Equal(t, "owner-1", updated.OwnerID)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestItemRepoPG_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	updated, err := repo.Update(ctx, "missing-id", "x", "y")

	require.Error(t, err)
	assert.Nil(t, updated)

	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestItemRepoPG_Delete(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	created, err := repo.Create(ctx, &item.Item{Title: "Milk", OwnerID: "owner-1"})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "owner-1", deleted.OwnerID)

	items, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemRepoPG_Delete_Twice(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewItemRepoPG(db, logger)
	ctx := context.Background()

	created, err := repo.Create(ctx, &item.Item{Title: "Milk", OwnerID: "owner-1"})
	require.NoError(t, err)

	_, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)

	require.Error(t, err)
	assert.Nil(t, deleted)

	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
