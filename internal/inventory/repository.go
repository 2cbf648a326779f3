package inventory

import (
	"context"

	"github.com/nivapos/catalog-service/internal/inventory/dto"
	"github.com/nivapos/catalog-service/internal/model"
)

type Repository interface {
	// Inventory items
	GetByProduct(ctx context.Context, merchantID, productID string, storeID *string) (*model.Inventory, error)
	BatchGetByProducts(ctx context.Context, merchantID string, productIDs []string, storeID *string) ([]model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)

	CreateOrUpdate(ctx context.Context, inv *model.Inventory) error

	// Movements / audit
	LogMovement(ctx context.Context, movement *model.InventoryMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)

	// Stock update and its movement row commit together.
	AdjustStockWithMovement(ctx context.Context, inv *model.Inventory, movement *model.InventoryMovement) error
}
