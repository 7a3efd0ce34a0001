package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/waterline/internal/administrator/domain"
	"github.com/smallbiznis/waterline/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, admin *domain.Administrator) error {
	err := conn.WithContext(ctx).Create(admin).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrEmailTaken
	}
	return err
}

// FindByUserID returns nil when the identity has no administrator row.
func (r *repo) FindByUserID(ctx context.Context, conn *gorm.DB, userID snowflake.ID) (*domain.Administrator, error) {
	var admin domain.Administrator
	err := conn.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repo) FindByEmail(ctx context.Context, conn *gorm.DB, email string) (*domain.Administrator, error) {
	var admin domain.Administrator
	err := conn.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
