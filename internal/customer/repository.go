package customer

import (
	"context"

	"github.com/nivapos/catalog-service/internal/customer/dto"
	"github.com/nivapos/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindAll(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id string) error

	// Atomic points update, guarded against negative balances.
	AdjustLoyalty(ctx context.Context, id string, delta int) (*model.Customer, error)
}
