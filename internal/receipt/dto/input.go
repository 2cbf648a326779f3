package dto

type UpdateTemplateInput struct {
	MerchantID     string   `json:"-"`
	Name           string   `json:"name"`
	HeaderLines    []string `json:"header_lines"`
	FooterLines    []string `json:"footer_lines"`
	PaperWidth     int      `json:"paper_width"`
	ShowLogo       bool     `json:"show_logo"`
	ShowBarcode    bool     `json:"show_barcode"`
	ShowTaxSummary bool     `json:"show_tax_summary"`
}

type PreviewSale struct {
	MerchantName string        `json:"merchant_name"`
	ReceiptNo    string        `json:"receipt_no"`
	Items        []PreviewItem `json:"items"`
	TaxTotal     float64       `json:"tax_total"`
	Total        float64       `json:"total"`
}

type PreviewItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}
