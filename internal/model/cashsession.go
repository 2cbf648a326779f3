package model

import "time"

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

const (
	MovementPayIn    = "pay_in"
	MovementPayOut   = "pay_out"
	MovementCashSale = "cash_sale"
)

type CashSession struct {
	BaseModel
	MerchantID   string     `db:"merchant_id" json:"merchant_id"`
	RegisterID   string     `db:"register_id" json:"register_id"`
	OpenedBy     string     `db:"opened_by" json:"opened_by"`
	OpeningFloat float64    `db:"opening_float" json:"opening_float"`
	CashSales    float64    `db:"cash_sales" json:"cash_sales"`
	PayIns       float64    `db:"pay_ins" json:"pay_ins"`
	PayOuts      float64    `db:"pay_outs" json:"pay_outs"`
	Expected     *float64   `db:"expected_amount" json:"expected_amount"`
	Counted      *float64   `db:"counted_amount" json:"counted_amount"`
	Variance     *float64   `db:"variance" json:"variance"`
	Status       string     `db:"status" json:"status"`
	ClosingNotes *string    `db:"closing_notes" json:"closing_notes"`
	ClosedAt     *time.Time `db:"closed_at" json:"closed_at"`
}

type CashMovement struct {
	ID           string    `db:"id" json:"id"`
	SessionID    string    `db:"session_id" json:"session_id"`
	MerchantID   string    `db:"merchant_id" json:"merchant_id"`
	MovementType string    `db:"movement_type" json:"movement_type"`
	Amount       float64   `db:"amount" json:"amount"`
	Reason       string    `db:"reason" json:"reason"`
	CreatedBy    *string   `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
