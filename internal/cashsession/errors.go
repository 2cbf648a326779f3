package cashsession

import "github.com/pkg/errors"

var (
	ErrNotFound        = errors.New("cash session not found")
	ErrSessionClosed   = errors.New("cash session is closed")
	ErrRegisterBusy    = errors.New("register already has an open session")
	ErrInvalidMovement = errors.New("invalid movement type")
)
