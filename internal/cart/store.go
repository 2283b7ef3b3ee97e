// Package cart implements the shopping cart core: the idempotent
// per-conversation cart record, the quantity ledger for items, and the
// read view with totals.
package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ncastellanos/tiendita-backend/pkg/db"
	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Store persists cart records.
type Store struct {
	db *gorm.DB
}

// NewStore builds a cart store tied to the provided GORM DB.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetOrCreate returns the cart bound to the conversation, creating it on
// first use. Concurrent first calls race on the insert; the loser hits the
// unique index on conversation_id and reloads the winner's row, so both
// callers observe the same cart id.
func (s *Store) GetOrCreate(ctx context.Context, conversationID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).First(&cart, "conversation_id = ?", conversationID).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.Cart{
		ID:             uuid.New(),
		ConversationID: conversationID,
	}
	if err := s.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if db.IsUniqueViolation(err) {
			var winner models.Cart
			if err := s.db.WithContext(ctx).First(&winner, "conversation_id = ?", conversationID).Error; err != nil {
				return nil, err
			}
			return &winner, nil
		}
		return nil, err
	}
	return fresh, nil
}
