package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	"gorm.io/gorm"
)

type Administrator struct {
	ID        snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name      string           `gorm:"type:varchar(100);not null" json:"nom"`
	Email     string           `gorm:"type:varchar(254);not null;uniqueIndex" json:"email"`
	UserID    *snowflake.ID    `gorm:"uniqueIndex" json:"-"`
	User      *authdomain.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Administrator) TableName() string { return "administrators" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, admin *Administrator) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Administrator, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Administrator, error)
}

var ErrEmailTaken = errors.New("email_taken")
