package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	// FindForClient returns nil when the invoice does not exist or belongs to another client.
	FindForClient(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*Invoice, error)
	FindDocument(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*DocumentRow, error)
	ListRecentForClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, limit int) ([]Invoice, error)
	// SumAmount totals invoices dated in [from, to).
	SumAmount(ctx context.Context, db *gorm.DB, from, to time.Time) (float64, error)
}
