package customer

import "github.com/pkg/errors"

var (
	ErrNotFound           = errors.New("customer not found")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)
