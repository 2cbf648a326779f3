package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/inventory"
	"github.com/nivapos/catalog-service/internal/inventory/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/cache"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

const (
	lockTTL       = 5 * time.Second
	lockRetries   = 3
	lockRetryWait = 100 * time.Millisecond
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// cache may be nil; adjustments then run without the distributed lock.
func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetProductInventory(ctx context.Context, merchantID, productID string, storeID *string) (*model.Inventory, error) {
	inv, err := uc.repo.GetByProduct(ctx, merchantID, productID, storeID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		// Products without a row read as zero stock.
		return &model.Inventory{
			MerchantID:        merchantID,
			StoreID:           storeID,
			ProductID:         productID,
			Quantity:          0,
			AvailableQuantity: 0,
		}, nil
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, merchantID string, storeID *string, page, pageSize int) ([]model.Inventory, int, error) {
	return uc.repo.FindAll(ctx, &dto.InventoryFilters{
		MerchantID: merchantID,
		StoreID:    storeID,
		LowStock:   true,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (uc *inventoryUseCase) lockKey(input *dto.AdjustInventoryInput) string {
	key := fmt.Sprintf("lock:inventory:%s:%s", input.MerchantID, input.ProductID)
	if input.VariantID != nil {
		key += ":" + *input.VariantID
	}
	if input.StoreID != nil {
		key += ":" + *input.StoreID
	}
	return key
}

func (uc *inventoryUseCase) AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.Inventory, error) {
	return uc.adjust(ctx, input, "adjustment")
}

func (uc *inventoryUseCase) adjust(ctx context.Context, input *dto.AdjustInventoryInput, movementType string) (*model.Inventory, error) {
	if uc.cache != nil {
		lockKey := uc.lockKey(input)
		lockValue := uuid.New().String()

		acquired := false
		for i := 0; i < lockRetries; i++ {
			ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, lockTTL)
			if err != nil {
				uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(lockRetryWait)
		}
		if !acquired {
			return nil, inventory.ErrLockContention
		}
		defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)
	}

	inv, err := uc.repo.GetByProduct(ctx, input.MerchantID, input.ProductID, input.StoreID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if inv == nil {
		inv = &model.Inventory{
			ID:         uuid.New().String(),
			MerchantID: input.MerchantID,
			StoreID:    input.StoreID,
			ProductID:  input.ProductID,
			VariantID:  input.VariantID,
			Quantity:   0,
			UpdatedAt:  now,
		}
	}

	quantityBefore := inv.Quantity
	inv.Quantity += input.QuantityChange
	inv.UpdatedAt = now

	if inv.Quantity < 0 {
		return nil, inventory.ErrInsufficientStock
	}

	var refID *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	var refType *string
	if input.ReferenceType != "" {
		refType = &input.ReferenceType
	}
	var createdBy *string
	if input.UserID != "" && input.UserID != "system" {
		createdBy = &input.UserID
	}

	movement := &model.InventoryMovement{
		ID:             uuid.New().String(),
		MerchantID:     input.MerchantID,
		StoreID:        input.StoreID,
		ProductID:      input.ProductID,
		VariantID:      input.VariantID,
		MovementType:   movementType,
		QuantityChange: input.QuantityChange,
		QuantityBefore: quantityBefore,
		QuantityAfter:  inv.Quantity,
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          input.Reason,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}

	if err := uc.repo.AdjustStockWithMovement(ctx, inv, movement); err != nil {
		return nil, err
	}

	return inv, nil
}

// TransferInventory moves stock between stores as a transfer_out followed by a
// transfer_in. If the inbound leg fails the outbound leg is compensated.
func (uc *inventoryUseCase) TransferInventory(ctx context.Context, input *dto.TransferInventoryInput) error {
	if input.Quantity <= 0 {
		return fmt.Errorf("invalid transfer quantity %f", input.Quantity)
	}

	out := &dto.AdjustInventoryInput{
		MerchantID:     input.MerchantID,
		StoreID:        input.SourceStoreID,
		ProductID:      input.ProductID,
		VariantID:      input.VariantID,
		QuantityChange: -input.Quantity,
		Reason:         input.Reason,
		ReferenceType:  "transfer",
		UserID:         input.UserID,
	}
	if _, err := uc.adjust(ctx, out, "transfer_out"); err != nil {
		return err
	}

	in := &dto.AdjustInventoryInput{
		MerchantID:     input.MerchantID,
		StoreID:        input.TargetStoreID,
		ProductID:      input.ProductID,
		VariantID:      input.VariantID,
		QuantityChange: input.Quantity,
		Reason:         input.Reason,
		ReferenceType:  "transfer",
		UserID:         input.UserID,
	}
	if _, err := uc.adjust(ctx, in, "transfer_in"); err != nil {
		out.QuantityChange = input.Quantity
		out.Reason = "transfer compensation"
		if _, compErr := uc.adjust(ctx, out, "transfer_in"); compErr != nil {
			uc.logger.Error("failed to compensate transfer",
				zap.String("product_id", input.ProductID), zap.Error(compErr))
		}
		return err
	}

	return nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}
