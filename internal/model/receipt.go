package model

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// StringList stores a []string as a JSON document in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, errors.Wrap(err, "marshal string list")
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unsupported string list source %T", src)
	}
	return errors.Wrap(json.Unmarshal(data, (*[]string)(l)), "scan string list")
}

type ReceiptTemplate struct {
	BaseModel
	MerchantID     string     `db:"merchant_id" json:"merchant_id"`
	Name           string     `db:"name" json:"name"`
	HeaderLines    StringList `db:"header_lines" json:"header_lines"`
	FooterLines    StringList `db:"footer_lines" json:"footer_lines"`
	PaperWidth     int        `db:"paper_width" json:"paper_width"`
	ShowLogo       bool       `db:"show_logo" json:"show_logo"`
	ShowBarcode    bool       `db:"show_barcode" json:"show_barcode"`
	ShowTaxSummary bool       `db:"show_tax_summary" json:"show_tax_summary"`
}
