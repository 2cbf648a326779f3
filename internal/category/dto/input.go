package dto

type CreateCategoryInput struct {
	MerchantID  string `json:"-"`
	ParentID    *int64 `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateCategoryInput struct {
	ID          int64  `json:"-"`
	MerchantID  string `json:"-"`
	ParentID    *int64 `json:"parent_id"` // Nil clears the parent (category becomes a root)
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}
