package cashsession

import (
	"context"

	"github.com/nivapos/catalog-service/internal/cashsession/dto"
	"github.com/nivapos/catalog-service/internal/model"
)

type UseCase interface {
	OpenSession(ctx context.Context, input *dto.OpenSessionInput) (*model.CashSession, error)
	GetSession(ctx context.Context, merchantID, id string) (*model.CashSession, error)
	ListSessions(ctx context.Context, filters *dto.SessionFilters) ([]model.CashSession, int, error)
	RecordMovement(ctx context.Context, input *dto.RecordMovementInput) (*model.CashMovement, error)
	ListMovements(ctx context.Context, merchantID, sessionID string) ([]model.CashMovement, error)
	CloseSession(ctx context.Context, input *dto.CloseSessionInput) (*model.CashSession, error)
}

// Notifier pushes drawer events out to connected registers.
type Notifier interface {
	Publish(merchantID string, event interface{})
}
