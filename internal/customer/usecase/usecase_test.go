package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivapos/catalog-service/internal/customer"
	"github.com/nivapos/catalog-service/internal/customer/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type fakeRepo struct {
	customers map[string]*model.Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[string]*model.Customer)}
}

func (r *fakeRepo) Create(ctx context.Context, c *model.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, f *dto.CustomerFilters) ([]model.Customer, int, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.MerchantID == f.MerchantID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, c *model.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeRepo) AdjustLoyalty(ctx context.Context, id string, delta int) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	if c.LoyaltyPoints+delta < 0 {
		return nil, customer.ErrInsufficientPoints
	}
	c.LoyaltyPoints += delta
	cp := *c
	return &cp, nil
}

const testMerchant = "m-1"

func createCustomer(t *testing.T, uc customer.UseCase) *model.Customer {
	t.Helper()
	c, err := uc.CreateCustomer(context.Background(), &dto.CreateCustomerInput{
		MerchantID: testMerchant, Name: "Ada", Email: "ada@example.com",
	})
	require.NoError(t, err)
	return c
}

func TestCreateCustomerNormalizesEmptyFields(t *testing.T) {
	uc := NewCustomerUseCase(newFakeRepo(), logger.NewNop())

	c, err := uc.CreateCustomer(context.Background(), &dto.CreateCustomerInput{
		MerchantID: testMerchant, Name: "Ada",
	})
	require.NoError(t, err)
	assert.Nil(t, c.Email)
	assert.Nil(t, c.Phone)
	assert.True(t, c.IsActive)
	assert.Zero(t, c.LoyaltyPoints)
}

func TestGetCustomerWrongMerchant(t *testing.T) {
	uc := NewCustomerUseCase(newFakeRepo(), logger.NewNop())
	c := createCustomer(t, uc)

	_, err := uc.GetCustomer(context.Background(), "m-2", c.ID)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestAdjustLoyaltyAccumulates(t *testing.T) {
	uc := NewCustomerUseCase(newFakeRepo(), logger.NewNop())
	c := createCustomer(t, uc)

	got, err := uc.AdjustLoyalty(context.Background(), &dto.AdjustLoyaltyInput{
		CustomerID: c.ID, MerchantID: testMerchant, Delta: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, got.LoyaltyPoints)

	got, err = uc.AdjustLoyalty(context.Background(), &dto.AdjustLoyaltyInput{
		CustomerID: c.ID, MerchantID: testMerchant, Delta: -10,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, got.LoyaltyPoints)
}

func TestAdjustLoyaltyRejectsNegativeBalance(t *testing.T) {
	uc := NewCustomerUseCase(newFakeRepo(), logger.NewNop())
	c := createCustomer(t, uc)

	_, err := uc.AdjustLoyalty(context.Background(), &dto.AdjustLoyaltyInput{
		CustomerID: c.ID, MerchantID: testMerchant, Delta: -5,
	})
	assert.ErrorIs(t, err, customer.ErrInsufficientPoints)
}

func TestAdjustLoyaltyWrongMerchant(t *testing.T) {
	uc := NewCustomerUseCase(newFakeRepo(), logger.NewNop())
	c := createCustomer(t, uc)

	_, err := uc.AdjustLoyalty(context.Background(), &dto.AdjustLoyaltyInput{
		CustomerID: c.ID, MerchantID: "m-2", Delta: 5,
	})
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestDeleteCustomerIdempotent(t *testing.T) {
	uc := NewCustomerUseCase(newFakeRepo(), logger.NewNop())
	c := createCustomer(t, uc)

	require.NoError(t, uc.DeleteCustomer(context.Background(), testMerchant, c.ID))
	assert.NoError(t, uc.DeleteCustomer(context.Background(), testMerchant, c.ID))
}
