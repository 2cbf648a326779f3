package dto

type CreateProductInput struct {
	MerchantID     string  `json:"-"`
	CategoryID     *int64  `json:"category_id"`
	SKU            string  `json:"sku"`
	Barcode        string  `json:"barcode"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	BasePrice      float64 `json:"base_price"`
	CostPrice      float64 `json:"cost_price"`
	TaxRate        float64 `json:"tax_rate"`
	HasVariants    bool    `json:"has_variants"`
	TrackInventory bool    `json:"track_inventory"`
	ImageURL       string  `json:"image_url"`
}

type UpdateProductInput struct {
	ID             string  `json:"-"`
	MerchantID     string  `json:"-"`
	CategoryID     *int64  `json:"category_id"`
	SKU            string  `json:"sku"`
	Barcode        string  `json:"barcode"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	BasePrice      float64 `json:"base_price"`
	CostPrice      float64 `json:"cost_price"`
	TaxRate        float64 `json:"tax_rate"`
	TrackInventory bool    `json:"track_inventory"`
	ImageURL       string  `json:"image_url"`
	IsActive       bool    `json:"is_active"`
}

type CreateVariantInput struct {
	ProductID       string  `json:"-"`
	SKU             string  `json:"sku"`
	Barcode         string  `json:"barcode"`
	VariantName     string  `json:"variant_name"`
	PriceAdjustment float64 `json:"price_adjustment"`
	CostPrice       float64 `json:"cost_price"`
}
