package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Client, error)
	ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error)
	Count(ctx context.Context, db *gorm.DB, activeOnly bool) (int64, error)
	// AddConsumption increments consumed volume and balance in a single UPDATE.
	AddConsumption(ctx context.Context, db *gorm.DB, id snowflake.ID, volume, amount float64) error
}
