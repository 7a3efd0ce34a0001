package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/waterline/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindForClient(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) FindDocument(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*domain.DocumentRow, error) {
	var rows []domain.DocumentRow
	err := db.WithContext(ctx).Raw(
		`SELECT i.id AS id, i.issued_on AS issued_on, i.total_amount AS total_amount,
		        i.payment_status AS payment_status, c.name AS client_name, c.email AS client_email,
		        c.address AS client_address, d.volume AS volume, d.distributed_on AS distributed_on
		 FROM invoices i
		 JOIN clients c ON c.id = i.client_id
		 JOIN distributions d ON d.id = i.distribution_id
		 WHERE i.id = ? AND i.client_id = ?
		 LIMIT 1`,
		id,
		clientID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repo) ListRecentForClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, limit int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("issued_on desc, id desc").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

func (r *repo) SumAmount(ctx context.Context, db *gorm.DB, from, to time.Time) (float64, error) {
	var total float64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("issued_on >= ? AND issued_on < ?", from, to).
		Scan(&total).Error
	return total, err
}
