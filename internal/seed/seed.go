package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	administratordomain "github.com/smallbiznis/waterline/internal/administrator/domain"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	"github.com/smallbiznis/waterline/internal/auth/password"
	authservice "github.com/smallbiznis/waterline/internal/auth/service"
	"github.com/smallbiznis/waterline/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultAdminName = "Administrator"

// EnsureBootstrapAdmin makes sure the configured administrator can log in.
// Existing rows are left untouched so restarts never rotate the password.
func EnsureBootstrapAdmin(ctx context.Context, db *gorm.DB, node *snowflake.Node, cfg config.BootstrapConfig, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	email, err := authservice.NormalizeEmail(cfg.AdminEmail)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(cfg.AdminPassword)) < authservice.MinPasswordLength {
		return authdomain.ErrWeakPassword
	}
	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = defaultAdminName
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user authdomain.User
		err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hashed, err := password.Hash(cfg.AdminPassword)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			user = authdomain.User{
				ID:                  node.Generate(),
				Email:               email,
				PasswordHash:        &hashed,
				DisplayName:         name,
				LastPasswordChanged: &now,
				CreatedAt:           now,
				UpdatedAt:           now,
			}
			if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
				return err
			}
			log.Info("bootstrap admin user created", zap.String("user_id", user.ID.String()))
		}

		var admin administratordomain.Administrator
		err = tx.WithContext(ctx).Where("email = ?", email).First(&admin).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		admin = administratordomain.Administrator{
			ID:        node.Generate(),
			Name:      name,
			Email:     email,
			UserID:    &user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&admin).Error; err != nil {
			return err
		}
		log.Info("bootstrap administrator created", zap.String("admin_id", admin.ID.String()))
		return nil
	})
}
