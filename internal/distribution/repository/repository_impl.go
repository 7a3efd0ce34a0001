package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/waterline/internal/distribution/domain"
	"github.com/smallbiznis/waterline/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, distribution *domain.Distribution) error {
	return conn.WithContext(ctx).Create(distribution).Error
}

func (r *repo) MonthlyVolumes(ctx context.Context, conn *gorm.DB, since time.Time) ([]domain.MonthlyVolume, error) {
	bucket := db.MonthBucket(conn, "distributed_on")

	var rows []domain.MonthlyVolume
	err := conn.WithContext(ctx).
		Model(&domain.Distribution{}).
		Select(bucket+" AS month, COALESCE(SUM(volume), 0) AS total_volume").
		Where("distributed_on >= ?", since).
		Group(bucket).
		Order("month asc").
		Scan(&rows).Error
	return rows, err
}

func (r *repo) ListRecentForClient(ctx context.Context, conn *gorm.DB, clientID snowflake.ID, limit int) ([]domain.Distribution, error) {
	var rows []domain.Distribution
	err := conn.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("distributed_on desc, id desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
