package product

import "github.com/pkg/errors"

var (
	ErrNotFound      = errors.New("product not found")
	ErrSKUExists     = errors.New("sku already exists")
	ErrBarcodeExists = errors.New("barcode already exists")
)
