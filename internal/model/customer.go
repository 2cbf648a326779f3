package model

type Customer struct {
	BaseModel
	MerchantID    string  `db:"merchant_id" json:"merchant_id"`
	Name          string  `db:"name" json:"name"`
	Email         *string `db:"email" json:"email"`
	Phone         *string `db:"phone" json:"phone"`
	Address       *string `db:"address" json:"address"`
	Notes         *string `db:"notes" json:"notes"`
	LoyaltyPoints int     `db:"loyalty_points" json:"loyalty_points"`
	IsActive      bool    `db:"is_active" json:"is_active"`
}
