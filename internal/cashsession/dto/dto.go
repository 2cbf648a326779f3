package dto

type SessionFilters struct {
	MerchantID string
	RegisterID string
	Status     string
	Page       int
	PageSize   int
}
