package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetOrCreate_idempotent(t *testing.T) {
	db := setupCartTestDB(t)
	store := NewStore(db)

	first, err := store.GetOrCreate(context.Background(), "conv-1")
	require.NoError(t, err)

	second, err := store.GetOrCreate(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := store.GetOrCreate(context.Background(), "conv-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	var count int64
	require.NoError(t, db.Table("carts").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestStoreConversationUniqueIndexHolds(t *testing.T) {
	db := setupCartTestDB(t)
	store := NewStore(db)

	winner, err := store.GetOrCreate(context.Background(), "conv-raced")
	require.NoError(t, err)

	// the losing insert of a concurrent get-or-create must hit the index
	dup := map[string]any{
		"id":              "11111111-1111-1111-1111-111111111111",
		"conversation_id": "conv-raced",
	}
	err = db.Table("carts").Create(dup).Error
	require.Error(t, err)

	// and the reload after the lost race lands on the winner's cart
	loser, err := store.GetOrCreate(context.Background(), "conv-raced")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, loser.ID)
}
