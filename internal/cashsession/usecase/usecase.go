package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/cashsession"
	"github.com/nivapos/catalog-service/internal/cashsession/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type cashSessionUseCase struct {
	repo     cashsession.Repository
	notifier cashsession.Notifier
	logger   logger.ZapLogger
}

// notifier may be nil; drawer events are then dropped.
func NewCashSessionUseCase(repo cashsession.Repository, notifier cashsession.Notifier, log logger.ZapLogger) cashsession.UseCase {
	return &cashSessionUseCase{
		repo:     repo,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *cashSessionUseCase) notify(merchantID, eventType string, session *model.CashSession) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Publish(merchantID, map[string]interface{}{
		"event_type": eventType,
		"session":    session,
	})
}

func (uc *cashSessionUseCase) OpenSession(ctx context.Context, input *dto.OpenSessionInput) (*model.CashSession, error) {
	open, err := uc.repo.FindOpenByRegister(ctx, input.MerchantID, input.RegisterID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, cashsession.ErrRegisterBusy
	}

	now := time.Now()
	s := &model.CashSession{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID:   input.MerchantID,
		RegisterID:   input.RegisterID,
		OpenedBy:     input.OpenedBy,
		OpeningFloat: input.OpeningFloat,
		Status:       model.SessionStatusOpen,
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.notify(input.MerchantID, "session_opened", s)
	return s, nil
}

func (uc *cashSessionUseCase) GetSession(ctx context.Context, merchantID, id string) (*model.CashSession, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.MerchantID != merchantID {
		return nil, cashsession.ErrNotFound
	}
	return s, nil
}

func (uc *cashSessionUseCase) ListSessions(ctx context.Context, filters *dto.SessionFilters) ([]model.CashSession, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *cashSessionUseCase) RecordMovement(ctx context.Context, input *dto.RecordMovementInput) (*model.CashMovement, error) {
	s, err := uc.GetSession(ctx, input.MerchantID, input.SessionID)
	if err != nil {
		return nil, err
	}
	if s.Status != model.SessionStatusOpen {
		return nil, cashsession.ErrSessionClosed
	}

	switch input.MovementType {
	case model.MovementCashSale, model.MovementPayIn, model.MovementPayOut:
	default:
		return nil, cashsession.ErrInvalidMovement
	}

	var createdBy *string
	if input.CreatedBy != "" {
		createdBy = &input.CreatedBy
	}

	m := &model.CashMovement{
		ID:           uuid.New().String(),
		SessionID:    s.ID,
		MerchantID:   input.MerchantID,
		MovementType: input.MovementType,
		Amount:       input.Amount,
		Reason:       input.Reason,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}

	// The repository applies the amount as a relative increment in the same
	// transaction as the insert.
	if err := uc.repo.AddMovement(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (uc *cashSessionUseCase) ListMovements(ctx context.Context, merchantID, sessionID string) ([]model.CashMovement, error) {
	if _, err := uc.GetSession(ctx, merchantID, sessionID); err != nil {
		return nil, err
	}
	return uc.repo.ListMovements(ctx, sessionID)
}

func (uc *cashSessionUseCase) CloseSession(ctx context.Context, input *dto.CloseSessionInput) (*model.CashSession, error) {
	s, err := uc.GetSession(ctx, input.MerchantID, input.SessionID)
	if err != nil {
		return nil, err
	}
	if s.Status != model.SessionStatusOpen {
		return nil, cashsession.ErrSessionClosed
	}

	now := time.Now()
	expected := s.OpeningFloat + s.CashSales + s.PayIns - s.PayOuts
	variance := input.CountedCash - expected

	s.Expected = &expected
	s.Counted = &input.CountedCash
	s.Variance = &variance
	s.Status = model.SessionStatusClosed
	s.ClosedAt = &now
	s.UpdatedAt = now
	if input.ClosingNotes != "" {
		s.ClosingNotes = &input.ClosingNotes
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	if variance != 0 {
		uc.logger.Warn("cash session closed with variance",
			zap.String("session_id", s.ID),
			zap.Float64("variance", variance),
		)
	}

	uc.notify(input.MerchantID, "session_closed", s)
	return s, nil
}
