package model

import "time"

// Category ids are integers (bigserial) rather than UUIDs: the POS frontend
// keys its category tree on numeric ids and sorts siblings by sort_order.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	MerchantID  string    `db:"merchant_id" json:"merchant_id"`
	ParentID    *int64    `db:"parent_id" json:"parent_id"` // Nullable
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
