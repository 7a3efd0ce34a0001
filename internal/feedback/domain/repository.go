package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type PositiveRow struct {
	ID          snowflake.ID
	Comment     string
	Rating      float64
	SubmittedOn time.Time
	ClientName  string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, feedback *Feedback) error
	// ListPositive returns rows rated at least minRating joined with the client name,
	// newest date first and ties by id descending.
	ListPositive(ctx context.Context, db *gorm.DB, minRating float64, limit int) ([]PositiveRow, error)
	AverageRating(ctx context.Context, db *gorm.DB) (float64, error)
}
