package service

import (
	"context"
	"math"
	"strings"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	"github.com/smallbiznis/waterline/internal/feedback/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	DashboardCfg *config.DashboardConfigHolder
	Repo         domain.Repository
	ClientRepo   clientdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	dashboardCfg *config.DashboardConfigHolder
	repo         domain.Repository
	clientRepo   clientdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("feedback.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		dashboardCfg: p.DashboardCfg,
		repo:         p.Repo,
		clientRepo:   p.ClientRepo,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.Feedback, error) {
	if req.Rating == nil {
		return nil, domain.ErrInvalidRating
	}
	rating := *req.Rating
	if math.IsNaN(rating) || rating < domain.MinRating || rating > domain.MaxRating {
		return nil, domain.ErrInvalidRating
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, domain.ErrInvalidComment
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, clientdomain.ErrNotFound
	}

	feedback := &domain.Feedback{
		ID:       s.genID.Generate(),
		Comment:  comment,
		Rating:   rating,
		Date:     clock.Today(s.clock),
		ClientID: client.ID,
	}
	if err := s.repo.Insert(ctx, s.db, feedback); err != nil {
		return nil, err
	}

	s.log.Info("feedback submitted",
		zap.String("feedback_id", feedback.ID.String()),
		zap.String("client_id", client.ID.String()),
		zap.Float64("rating", rating),
	)
	return feedback, nil
}

func (s *Service) ListPositive(ctx context.Context) ([]domain.Positive, error) {
	cfg := s.dashboardCfg.Get()
	minRating := math.Max(cfg.PositiveFeedbackMinRating, config.MinPositiveFeedbackRating)
	limit := min(cfg.PositiveFeedbackLimit, config.MaxPositiveFeedbackLimit)
	rows, err := s.repo.ListPositive(ctx, s.db, minRating, limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Positive, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.Positive{
			ID:         row.ID,
			Comment:    row.Comment,
			Rating:     row.Rating,
			Date:       row.SubmittedOn.UTC().Format(dateLayout),
			ClientName: row.ClientName,
		})
	}
	return items, nil
}

func (s *Service) AverageRating(ctx context.Context) (float64, error) {
	return s.repo.AverageRating(ctx, s.db)
}
