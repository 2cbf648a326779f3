package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
	"github.com/nivapos/catalog-service/internal/product"
	"github.com/nivapos/catalog-service/internal/product/dto"
)

type fakeRepo struct {
	products map[string]*model.Product
	variants map[string][]model.ProductVariant
	reserved map[string]float64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[string]*model.Product),
		variants: make(map[string][]model.ProductVariant),
		reserved: make(map[string]float64),
	}
}

func (r *fakeRepo) Create(ctx context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.MerchantID == f.MerchantID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) IsSKUUnique(ctx context.Context, merchantID, sku, excludeID string) (bool, error) {
	for _, p := range r.products {
		if p.MerchantID == merchantID && p.SKU == sku && p.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeRepo) IsBarcodeUnique(ctx context.Context, merchantID, barcode, excludeID string) (bool, error) {
	for _, p := range r.products {
		if p.MerchantID == merchantID && p.Barcode != nil && *p.Barcode == barcode && p.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeRepo) CreateVariant(ctx context.Context, v *model.ProductVariant) error {
	r.variants[v.ProductID] = append(r.variants[v.ProductID], *v)
	return nil
}

func (r *fakeRepo) FindVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	return r.variants[productID], nil
}

func (r *fakeRepo) ReserveStock(ctx context.Context, items map[string]float64) error {
	for id, qty := range items {
		r.reserved[id] += qty
	}
	return nil
}

func newUC(repo product.Repository) product.UseCase {
	return NewProductUseCase(repo, nil, nil, logger.NewNop())
}

func TestCreateProduct(t *testing.T) {
	uc := newUC(newFakeRepo())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "COLA-330", Name: "Cola 330ml", BasePrice: 2.5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.IsActive)
	assert.Nil(t, p.Barcode)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	uc := newUC(newFakeRepo())

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "COLA-330", Name: "Cola",
	})
	require.NoError(t, err)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "COLA-330", Name: "Cola again",
	})
	assert.ErrorIs(t, err, product.ErrSKUExists)
}

func TestCreateProductRejectsDuplicateBarcode(t *testing.T) {
	uc := newUC(newFakeRepo())

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "A", Name: "A", Barcode: "123",
	})
	require.NoError(t, err)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "B", Name: "B", Barcode: "123",
	})
	assert.ErrorIs(t, err, product.ErrBarcodeExists)
}

func TestUpdateProductWrongMerchant(t *testing.T) {
	uc := newUC(newFakeRepo())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "A", Name: "A",
	})
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID: p.ID, MerchantID: "m-2", SKU: "A", Name: "Stolen",
	})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestDeleteProductIdempotent(t *testing.T) {
	uc := newUC(newFakeRepo())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "A", Name: "A",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
	assert.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
}

func TestAddVariantFlagsProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := newUC(repo)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		MerchantID: "m-1", SKU: "SHIRT", Name: "Shirt",
	})
	require.NoError(t, err)
	require.False(t, p.HasVariants)

	v, err := uc.AddVariant(context.Background(), &dto.CreateVariantInput{
		ProductID: p.ID, SKU: "SHIRT-L", VariantName: "Large", PriceAdjustment: 1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProductID)

	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasVariants)
	require.Len(t, stored.Variants, 1)
	assert.Equal(t, "Large", stored.Variants[0].VariantName)
}

func TestAddVariantUnknownProduct(t *testing.T) {
	uc := newUC(newFakeRepo())

	_, err := uc.AddVariant(context.Background(), &dto.CreateVariantInput{
		ProductID: "missing", SKU: "X", VariantName: "X",
	})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestReserveStockDelegates(t *testing.T) {
	repo := newFakeRepo()
	uc := newUC(repo)

	err := uc.ReserveStock(context.Background(), map[string]float64{"p1": 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, repo.reserved["p1"])
}
