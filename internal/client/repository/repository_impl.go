package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, client *domain.Client) error {
	err := conn.WithContext(ctx).Create(client).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	return r.findOne(ctx, conn, "id = ?", id)
}

func (r *repo) FindByUserID(ctx context.Context, conn *gorm.DB, userID snowflake.ID) (*domain.Client, error) {
	return r.findOne(ctx, conn, "user_id = ?", userID)
}

func (r *repo) ExistsByEmail(ctx context.Context, conn *gorm.DB, email string) (bool, error) {
	var count int64
	err := conn.WithContext(ctx).Model(&domain.Client{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *repo) Count(ctx context.Context, conn *gorm.DB, activeOnly bool) (int64, error) {
	var count int64
	stmt := conn.WithContext(ctx).Model(&domain.Client{})
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	err := stmt.Count(&count).Error
	return count, err
}

func (r *repo) AddConsumption(ctx context.Context, conn *gorm.DB, id snowflake.ID, volume, amount float64) error {
	tx := conn.WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"consumed_volume": gorm.Expr("consumed_volume + ?", volume),
			"balance":         gorm.Expr("balance + ?", amount),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// findOne returns nil without error when nothing matches.
func (r *repo) findOne(ctx context.Context, conn *gorm.DB, query string, args ...any) (*domain.Client, error) {
	var client domain.Client
	err := conn.WithContext(ctx).Where(query, args...).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}
