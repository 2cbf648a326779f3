package dto

type CustomerFilters struct {
	MerchantID  string
	SearchQuery string // name, email, phone
	IsActive    *bool
	Page        int
	PageSize    int
}
