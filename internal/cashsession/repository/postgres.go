package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/nivapos/catalog-service/internal/cashsession"
	"github.com/nivapos/catalog-service/internal/cashsession/dto"
	"github.com/nivapos/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.CashSession) error {
	query := `
        INSERT INTO cash_sessions (
            id, merchant_id, register_id, opened_by, opening_float,
            cash_sales, pay_ins, pay_outs, status, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :register_id, :opened_by, :opening_float,
            :cash_sales, :pay_ins, :pay_outs, :status, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return errors.Wrap(err, "insert cash session")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.CashSession, error) {
	var s model.CashSession
	query := `SELECT * FROM cash_sessions WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find cash session")
	}
	return &s, nil
}

func (r *PGRepository) FindOpenByRegister(ctx context.Context, merchantID, registerID string) (*model.CashSession, error) {
	var s model.CashSession
	query := `
        SELECT * FROM cash_sessions
        WHERE merchant_id = $1 AND register_id = $2 AND status = $3
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &s, query, merchantID, registerID, model.SessionStatusOpen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find open session")
	}
	return &s, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SessionFilters) ([]model.CashSession, int, error) {
	var sessions []model.CashSession
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.RegisterID != "" {
		conditions = append(conditions, "register_id = :register_id")
		args["register_id"] = f.RegisterID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM cash_sessions" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count cash sessions")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan session count")
		}
	}

	query := "SELECT * FROM cash_sessions" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare session query")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &sessions, args); err != nil {
		return nil, 0, errors.Wrap(err, "select cash sessions")
	}
	return sessions, count, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.CashSession) error {
	query := `
        UPDATE cash_sessions
        SET cash_sales = :cash_sales,
            pay_ins = :pay_ins,
            pay_outs = :pay_outs,
            expected_amount = :expected_amount,
            counted_amount = :counted_amount,
            variance = :variance,
            status = :status,
            closing_notes = :closing_notes,
            closed_at = :closed_at,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return errors.Wrap(err, "update cash session")
}

func (r *PGRepository) AddMovement(ctx context.Context, m *model.CashMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin movement tx")
	}
	defer tx.Rollback()

	// Relative increments keyed on the movement type; the status guard keeps
	// a concurrent close from racing the insert.
	updateQuery := `
        UPDATE cash_sessions
        SET cash_sales = cash_sales + CASE WHEN :movement_type = 'cash_sale' THEN :amount ELSE 0 END,
            pay_ins = pay_ins + CASE WHEN :movement_type = 'pay_in' THEN :amount ELSE 0 END,
            pay_outs = pay_outs + CASE WHEN :movement_type = 'pay_out' THEN :amount ELSE 0 END,
            updated_at = :created_at
        WHERE id = :session_id AND merchant_id = :merchant_id AND status = 'open'
    `
	res, err := tx.NamedExecContext(ctx, updateQuery, m)
	if err != nil {
		return errors.Wrap(err, "update session totals")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "session totals rows affected")
	}
	if affected == 0 {
		return cashsession.ErrSessionClosed
	}

	insertQuery := `
        INSERT INTO cash_movements (
            id, session_id, merchant_id, movement_type, amount, reason,
            created_by, created_at
        )
        VALUES (
            :id, :session_id, :merchant_id, :movement_type, :amount, :reason,
            :created_by, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, m); err != nil {
		return errors.Wrap(err, "insert cash movement")
	}

	return errors.Wrap(tx.Commit(), "commit movement tx")
}

func (r *PGRepository) ListMovements(ctx context.Context, sessionID string) ([]model.CashMovement, error) {
	var movements []model.CashMovement
	query := `SELECT * FROM cash_movements WHERE session_id = $1 ORDER BY created_at ASC`
	if err := r.DB.SelectContext(ctx, &movements, query, sessionID); err != nil {
		return nil, errors.Wrap(err, "select cash movements")
	}
	return movements, nil
}
