package category

import "github.com/pkg/errors"

var (
	ErrNotFound       = errors.New("category not found")
	ErrParentNotFound = errors.New("parent category not found")
	ErrInvalidParent  = errors.New("parent would create a cycle")
)
