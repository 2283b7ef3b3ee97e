package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is one shopping session per external conversation. The unique index on
// conversation_id is what makes get-or-create race-safe: the losing insert of
// two concurrent callers fails and retries the lookup.
type Cart struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ConversationID string    `gorm:"column:conversation_id;not null;uniqueIndex:ux_carts_conversation"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
