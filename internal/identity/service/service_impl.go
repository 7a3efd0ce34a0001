package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	admindomain "github.com/smallbiznis/waterline/internal/administrator/domain"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/identity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	AdminRepo  admindomain.Repository
	ClientRepo clientdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	adminRepo  admindomain.Repository
	clientRepo clientdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("identity.service"),
		adminRepo:  p.AdminRepo,
		clientRepo: p.ClientRepo,
	}
}

func (s *Service) Resolve(ctx context.Context, userID snowflake.ID) (domain.Principal, error) {
	if userID == 0 {
		return domain.Principal{}, domain.ErrUnrecognizedIdentity
	}

	admin, err := s.adminRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return domain.Principal{}, err
	}
	if admin != nil {
		return domain.Principal{
			UserID:    userID,
			Role:      domain.RoleAdmin,
			SubjectID: admin.ID,
			Name:      admin.Name,
			Email:     admin.Email,
		}, nil
	}

	client, err := s.clientRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return domain.Principal{}, err
	}
	if client != nil {
		return domain.Principal{
			UserID:    userID,
			Role:      domain.RoleClient,
			SubjectID: client.ID,
			Name:      client.Name,
			Email:     client.Email,
		}, nil
	}

	s.log.Warn("authenticated user has no role", zap.String("user_id", userID.String()))
	return domain.Principal{}, domain.ErrUnrecognizedIdentity
}
