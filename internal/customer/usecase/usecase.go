package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nivapos/catalog-service/internal/customer"
	"github.com/nivapos/catalog-service/internal/customer/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type customerUseCase struct {
	repo   customer.Repository
	logger logger.ZapLogger
}

func NewCustomerUseCase(repo customer.Repository, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		logger: log,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (uc *customerUseCase) CreateCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error) {
	now := time.Now()
	c := &model.Customer{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID: input.MerchantID,
		Name:       input.Name,
		Email:      optional(input.Email),
		Phone:      optional(input.Phone),
		Address:    optional(input.Address),
		Notes:      optional(input.Notes),
		IsActive:   true,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *customerUseCase) GetCustomer(ctx context.Context, merchantID, id string) (*model.Customer, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.MerchantID != merchantID {
		return nil, customer.ErrNotFound
	}
	return c, nil
}

func (uc *customerUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *customerUseCase) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.Customer, error) {
	c, err := uc.GetCustomer(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, err
	}

	c.Name = input.Name
	c.Email = optional(input.Email)
	c.Phone = optional(input.Phone)
	c.Address = optional(input.Address)
	c.Notes = optional(input.Notes)
	c.IsActive = input.IsActive
	c.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *customerUseCase) DeleteCustomer(ctx context.Context, merchantID, id string) error {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return nil // Already deleted
	}
	if c.MerchantID != merchantID {
		return customer.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *customerUseCase) AdjustLoyalty(ctx context.Context, input *dto.AdjustLoyaltyInput) (*model.Customer, error) {
	// Ownership check before the atomic update.
	if _, err := uc.GetCustomer(ctx, input.MerchantID, input.CustomerID); err != nil {
		return nil, err
	}
	return uc.repo.AdjustLoyalty(ctx, input.CustomerID, input.Delta)
}
