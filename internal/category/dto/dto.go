package dto

type CategoryFilters struct {
	MerchantID string
	ParentID   *int64 // Nil means ignore
	RootsOnly  bool   // parent_id IS NULL
	IsActive   *bool
	Page       int
	PageSize   int
}
