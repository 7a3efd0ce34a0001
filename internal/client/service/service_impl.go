package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	authservice "github.com/smallbiznis/waterline/internal/auth/service"
	"github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxNameLength  = 100
	maxPhoneLength = 15
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	AuthSvc authdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	authsvc authdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("client.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		authsvc: p.AuthSvc,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, domain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if utf8.RuneCountInString(phone) > maxPhoneLength {
		return nil, domain.ErrInvalidPhone
	}
	email, err := authservice.NormalizeEmail(req.Email)
	if err != nil {
		return nil, authdomain.ErrInvalidEmail
	}

	var created *domain.Client
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.repo.ExistsByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailTaken
		}

		user, err := s.authsvc.WithTx(tx).CreateUser(ctx, authdomain.CreateUserRequest{
			Email:       email,
			Password:    req.Password,
			DisplayName: name,
		})
		if err != nil {
			if errors.Is(err, authdomain.ErrUserExists) {
				return domain.ErrEmailTaken
			}
			return err
		}

		now := s.clock.Now()
		userID := user.ID
		client := &domain.Client{
			ID:            s.genID.Generate(),
			Name:          name,
			Email:         email,
			Phone:         phone,
			Address:       strings.TrimSpace(req.Address),
			PaymentStatus: domain.PaymentStatusUnpaid,
			Active:        true,
			UserID:        &userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Insert(ctx, tx, client); err != nil {
			return err
		}
		created = client
		return nil
	})
	if err != nil {
		if !isRegistrationRejection(err) {
			s.log.Error("client registration failed", zap.Error(err))
		}
		return nil, err
	}

	s.log.Info("client registered", zap.String("client_id", created.ID.String()))
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

func (s *Service) Count(ctx context.Context, activeOnly bool) (int64, error) {
	return s.repo.Count(ctx, s.db, activeOnly)
}

func isRegistrationRejection(err error) bool {
	return errors.Is(err, domain.ErrEmailTaken) ||
		errors.Is(err, authdomain.ErrWeakPassword) ||
		errors.Is(err, authdomain.ErrInvalidEmail)
}
