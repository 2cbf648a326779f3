package receipt

import (
	"context"

	"github.com/nivapos/catalog-service/internal/model"
)

type Repository interface {
	FindByMerchant(ctx context.Context, merchantID string) (*model.ReceiptTemplate, error)
	Upsert(ctx context.Context, template *model.ReceiptTemplate) error
}
