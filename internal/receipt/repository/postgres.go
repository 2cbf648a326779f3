package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/nivapos/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByMerchant(ctx context.Context, merchantID string) (*model.ReceiptTemplate, error) {
	var t model.ReceiptTemplate
	query := `SELECT * FROM receipt_templates WHERE merchant_id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &t, query, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find receipt template")
	}
	return &t, nil
}

func (r *PGRepository) Upsert(ctx context.Context, t *model.ReceiptTemplate) error {
	// One template per merchant.
	query := `
        INSERT INTO receipt_templates (
            id, merchant_id, name, header_lines, footer_lines, paper_width,
            show_logo, show_barcode, show_tax_summary, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :name, :header_lines, :footer_lines, :paper_width,
            :show_logo, :show_barcode, :show_tax_summary, :created_at, :updated_at
        )
        ON CONFLICT (merchant_id)
        DO UPDATE SET
            name = EXCLUDED.name,
            header_lines = EXCLUDED.header_lines,
            footer_lines = EXCLUDED.footer_lines,
            paper_width = EXCLUDED.paper_width,
            show_logo = EXCLUDED.show_logo,
            show_barcode = EXCLUDED.show_barcode,
            show_tax_summary = EXCLUDED.show_tax_summary,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return errors.Wrap(err, "upsert receipt template")
}
