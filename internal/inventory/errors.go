package inventory

import "github.com/pkg/errors"

var (
	ErrInsufficientStock = errors.New("insufficient inventory")
	ErrLockContention    = errors.New("inventory is busy, try again")
)
