package usecase

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/cache"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
	"github.com/nivapos/catalog-service/internal/pkg/search"
	"github.com/nivapos/catalog-service/internal/product"
	"github.com/nivapos/catalog-service/internal/product/dto"
)

const productIndex = "products"

const listCacheTTL = 5 * time.Minute

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

// Both cache and es may be nil; the use case degrades to plain DB access.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	unique, err := uc.repo.IsSKUUnique(ctx, input.MerchantID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, product.ErrSKUExists
	}

	if input.Barcode != "" {
		unique, err := uc.repo.IsBarcodeUnique(ctx, input.MerchantID, input.Barcode, "")
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrBarcodeExists
		}
	}

	now := time.Now()
	costPrice := input.CostPrice
	barcode := &input.Barcode
	if input.Barcode == "" {
		barcode = nil
	}

	p := &model.Product{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID:     input.MerchantID,
		CategoryID:     input.CategoryID,
		SKU:            input.SKU,
		Barcode:        barcode,
		Name:           input.Name,
		Description:    &input.Description,
		BasePrice:      input.BasePrice,
		CostPrice:      &costPrice,
		TaxRate:        input.TaxRate,
		HasVariants:    input.HasVariants,
		TrackInventory: input.TrackInventory,
		ImageURL:       &input.ImageURL,
		IsActive:       true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), input.MerchantID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	// One shared index, filtered by merchant_id at query time.
	mapping := `{
		"mappings": {
			"properties": {
				"merchant_id": { "type": "keyword" },
				"name": { "type": "text" },
				"description": { "type": "text" },
				"sku": { "type": "keyword" },
				"barcode": { "type": "keyword" },
				"base_price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p != nil && p.HasVariants {
		variants, err := uc.repo.FindVariants(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Variants = variants
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.listCacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	// Text queries go to Elasticsearch first, falling back to ILIKE in the DB.
	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{Products: products, Count: count}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"query_string": map[string]interface{}{
							"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
							"fields": []string{"name^3", "sku", "barcode", "description"},
						},
					},
					{
						"term": map[string]interface{}{
							"merchant_id": filters.MerchantID,
						},
					},
				},
			},
		},
		"from": (filters.Page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("products:list:%s:%x", filters.MerchantID, md5.Sum(data))
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, merchantID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("products:list:%s:*", merchantID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.MerchantID != input.MerchantID {
		return nil, product.ErrNotFound
	}

	if p.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, input.MerchantID, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrSKUExists
		}
	}

	p.SKU = input.SKU
	p.Name = input.Name
	p.Description = &input.Description
	p.BasePrice = input.BasePrice
	cost := input.CostPrice
	p.CostPrice = &cost
	p.TaxRate = input.TaxRate
	p.TrackInventory = input.TrackInventory
	p.ImageURL = &input.ImageURL
	p.IsActive = input.IsActive
	p.CategoryID = input.CategoryID
	if input.Barcode != "" {
		bc := input.Barcode
		p.Barcode = &bc
	} else {
		p.Barcode = nil
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // Already deleted
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	if uc.es == nil {
		return nil
	}
	go func() {
		if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
			uc.logger.Error("failed to delete product from ES", zap.Error(err))
		}
	}()

	return nil
}

func (uc *productUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error) {
	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	now := time.Now()
	barcode := &input.Barcode
	if input.Barcode == "" {
		barcode = nil
	}
	cost := input.CostPrice

	v := &model.ProductVariant{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:       p.ID,
		SKU:             input.SKU,
		Barcode:         barcode,
		VariantName:     input.VariantName,
		PriceAdjustment: input.PriceAdjustment,
		CostPrice:       &cost,
		IsActive:        true,
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}

	if !p.HasVariants {
		p.HasVariants = true
		p.UpdatedAt = now
		if err := uc.repo.Update(ctx, p); err != nil {
			uc.logger.Warn("failed to flag product as variant-bearing",
				zap.String("product_id", p.ID), zap.Error(err))
		}
	}

	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	return v, nil
}

func (uc *productUseCase) ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	return uc.repo.FindVariants(ctx, productID)
}

func (uc *productUseCase) ReserveStock(ctx context.Context, items map[string]float64) error {
	return uc.repo.ReserveStock(ctx, items)
}
