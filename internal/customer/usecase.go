package customer

import (
	"context"

	"github.com/nivapos/catalog-service/internal/customer/dto"
	"github.com/nivapos/catalog-service/internal/model"
)

type UseCase interface {
	CreateCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error)
	GetCustomer(ctx context.Context, merchantID, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, merchantID, id string) error
	AdjustLoyalty(ctx context.Context, input *dto.AdjustLoyaltyInput) (*model.Customer, error)
}
