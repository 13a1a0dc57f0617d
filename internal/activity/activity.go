package activity

import (
	"time"

	"github.com/google/uuid"
)

// Action tags the kind of user action a record describes.
type Action string

const (
	ActionOrderCreated         Action = "ORDER_CREATED"
	ActionOrderStatusUpdated   Action = "ORDER_STATUS_UPDATED"
	ActionOrderCompleted       Action = "ORDER_COMPLETED"
	ActionOrderDeleted         Action = "ORDER_DELETED"
	ActionSaleCompleted        Action = "SALE_COMPLETED"
	ActionSaleCreatedFromOrder Action = "SALE_CREATED_FROM_ORDER"
	ActionUserLogin            Action = "USER_LOGIN"
)

// Record is one append-only audit entry. Records are never mutated or
// deleted once written.
type Record struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
