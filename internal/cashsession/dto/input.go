package dto

type OpenSessionInput struct {
	MerchantID   string  `json:"-"`
	RegisterID   string  `json:"register_id"`
	OpenedBy     string  `json:"-"`
	OpeningFloat float64 `json:"opening_float"`
}

type RecordMovementInput struct {
	SessionID    string  `json:"-"`
	MerchantID   string  `json:"-"`
	MovementType string  `json:"movement_type"`
	Amount       float64 `json:"amount"`
	Reason       string  `json:"reason"`
	CreatedBy    string  `json:"-"`
}

type CloseSessionInput struct {
	SessionID    string  `json:"-"`
	MerchantID   string  `json:"-"`
	CountedCash  float64 `json:"counted_cash"`
	ClosingNotes string  `json:"closing_notes"`
}
