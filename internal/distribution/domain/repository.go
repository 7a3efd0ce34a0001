package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, distribution *Distribution) error
	// MonthlyVolumes sums volumes per YYYY-MM for rows dated on or after since, ascending.
	MonthlyVolumes(ctx context.Context, db *gorm.DB, since time.Time) ([]MonthlyVolume, error)
	ListRecentForClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, limit int) ([]Distribution, error)
}
