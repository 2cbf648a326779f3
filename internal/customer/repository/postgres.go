package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/nivapos/catalog-service/internal/customer"
	"github.com/nivapos/catalog-service/internal/customer/dto"
	"github.com/nivapos/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Customer) error {
	query := `
        INSERT INTO customers (
            id, merchant_id, name, email, phone, address, notes,
            loyalty_points, is_active, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :name, :email, :phone, :address, :notes,
            :loyalty_points, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "insert customer")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	query := `SELECT * FROM customers WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find customer")
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CustomerFilters) ([]model.Customer, int, error) {
	var customers []model.Customer
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR email ILIKE :search OR phone ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM customers" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count customers")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan customer count")
		}
	}

	query := "SELECT * FROM customers" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare customer query")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &customers, args); err != nil {
		return nil, 0, errors.Wrap(err, "select customers")
	}
	return customers, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `
        UPDATE customers
        SET name = :name,
            email = :email,
            phone = :phone,
            address = :address,
            notes = :notes,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "update customer")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	return errors.Wrap(err, "delete customer")
}

func (r *PGRepository) AdjustLoyalty(ctx context.Context, id string, delta int) (*model.Customer, error) {
	var c model.Customer
	query := `
        UPDATE customers
        SET loyalty_points = loyalty_points + $1, updated_at = NOW()
        WHERE id = $2 AND loyalty_points + $1 >= 0
        RETURNING *
    `
	err := r.DB.GetContext(ctx, &c, query, delta, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the customer is gone or the balance would go negative.
			exists, err := r.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if exists == nil {
				return nil, customer.ErrNotFound
			}
			return nil, customer.ErrInsufficientPoints
		}
		return nil, errors.Wrap(err, "adjust loyalty points")
	}
	return &c, nil
}
