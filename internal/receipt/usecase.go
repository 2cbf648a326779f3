package receipt

import (
	"context"

	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/receipt/dto"
)

type UseCase interface {
	// GetEffective returns the merchant's template, or the built-in default
	// when none has been saved.
	GetEffective(ctx context.Context, merchantID string) (*model.ReceiptTemplate, error)
	Update(ctx context.Context, input *dto.UpdateTemplateInput) (*model.ReceiptTemplate, error)
	Preview(ctx context.Context, merchantID string, sale *dto.PreviewSale) (string, error)
}
