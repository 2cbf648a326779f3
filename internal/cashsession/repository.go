package cashsession

import (
	"context"

	"github.com/nivapos/catalog-service/internal/cashsession/dto"
	"github.com/nivapos/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, session *model.CashSession) error
	FindByID(ctx context.Context, id string) (*model.CashSession, error)
	FindOpenByRegister(ctx context.Context, merchantID, registerID string) (*model.CashSession, error)
	FindAll(ctx context.Context, filters *dto.SessionFilters) ([]model.CashSession, int, error)
	Update(ctx context.Context, session *model.CashSession) error

	// Movement insert and session totals commit together; the totals are
	// incremented in SQL so concurrent movements cannot overwrite each other.
	AddMovement(ctx context.Context, movement *model.CashMovement) error
	ListMovements(ctx context.Context, sessionID string) ([]model.CashMovement, error)
}
