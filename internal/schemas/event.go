package schemas

import "time"

// Product lifecycle event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent is published after a product write has committed.
type ProductEvent struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	ProductID  int          `json:"product_id"`
	Product    *ProductRead `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time    `json:"occurred_at"`
}
