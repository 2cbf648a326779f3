package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
	"github.com/nivapos/catalog-service/internal/receipt"
	"github.com/nivapos/catalog-service/internal/receipt/dto"
)

type receiptUseCase struct {
	repo   receipt.Repository
	logger logger.ZapLogger
}

func NewReceiptUseCase(repo receipt.Repository, log logger.ZapLogger) receipt.UseCase {
	return &receiptUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *receiptUseCase) GetEffective(ctx context.Context, merchantID string) (*model.ReceiptTemplate, error) {
	t, err := uc.repo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return receipt.DefaultTemplate(merchantID)
	}
	return t, nil
}

func (uc *receiptUseCase) Update(ctx context.Context, input *dto.UpdateTemplateInput) (*model.ReceiptTemplate, error) {
	existing, err := uc.repo.FindByMerchant(ctx, input.MerchantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &model.ReceiptTemplate{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID:     input.MerchantID,
		Name:           input.Name,
		HeaderLines:    model.StringList(input.HeaderLines),
		FooterLines:    model.StringList(input.FooterLines),
		PaperWidth:     input.PaperWidth,
		ShowLogo:       input.ShowLogo,
		ShowBarcode:    input.ShowBarcode,
		ShowTaxSummary: input.ShowTaxSummary,
	}
	if existing != nil {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
	}

	if err := uc.repo.Upsert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *receiptUseCase) Preview(ctx context.Context, merchantID string, sale *dto.PreviewSale) (string, error) {
	t, err := uc.GetEffective(ctx, merchantID)
	if err != nil {
		return "", err
	}
	return receipt.Render(t, sale), nil
}
