package dto

type CreateCustomerInput struct {
	MerchantID string `json:"-"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
}

type UpdateCustomerInput struct {
	ID         string `json:"-"`
	MerchantID string `json:"-"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
	IsActive   bool   `json:"is_active"`
}

type AdjustLoyaltyInput struct {
	CustomerID string `json:"-"`
	MerchantID string `json:"-"`
	Delta      int    `json:"delta"`
	Reason     string `json:"reason"`
}
