package order

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type distinguishes how print files reach the shop.
type Type string

const (
	TypeUpload Type = "upload"
	TypeWalkin Type = "walkin"
)

// Status values form a forward-only chain: new -> processing -> ready ->
// completed. Cancelled is reachable from any non-terminal status.
type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// File describes one uploaded document stored in the object bucket. Key is
// the bucket path used for deletion after the order completes.
type File struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type Order struct {
	ID             int64           `json:"id"`
	OrderNumber    int             `json:"orderNumber"`
	PublicID       uuid.UUID       `json:"publicId"`
	CustomerID     int64           `json:"customerId"`
	ShopID         int64           `json:"shopId"`
	Type           Type            `json:"type"`
	Title          string          `json:"title"`
	Description    *string         `json:"description,omitempty"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
	Files          []File          `json:"files"`
	Status         Status          `json:"status"`
	IsUrgent       bool            `json:"isUrgent"`
	EstimateAmount *float64        `json:"estimateAmount,omitempty"`
	FinalAmount    *float64        `json:"finalAmount,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	DeletedAt      *time.Time      `json:"deletedAt,omitempty"`
	DeletedBy      *int64          `json:"deletedBy,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Deleted reports whether the order has been soft deleted.
func (o *Order) Deleted() bool {
	return o.DeletedAt != nil
}

// IsCustomer reports whether the given user id is the customer on this order.
func (o *Order) IsCustomer(userID int64) bool {
	return o.CustomerID == userID
}
