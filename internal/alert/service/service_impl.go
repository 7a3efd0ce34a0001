package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	alertdomain "github.com/smallbiznis/waterline/internal/alert/domain"
	"github.com/smallbiznis/waterline/internal/clock"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	"github.com/smallbiznis/waterline/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxTypeLength = 50

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	FacilityRepo facilitydomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	alerts       *repository.Store[alertdomain.Alert]
	facilityRepo facilitydomain.Repository
}

func NewService(p Params) alertdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("alert.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		alerts:       repository.NewStore[alertdomain.Alert](p.DB),
		facilityRepo: p.FacilityRepo,
	}
}

func (s *Service) Raise(ctx context.Context, req alertdomain.RaiseRequest) (*alertdomain.Alert, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, alertdomain.ErrInvalidMessage
	}
	alertType := strings.TrimSpace(req.Type)
	if alertType == "" || utf8.RuneCountInString(alertType) > maxTypeLength {
		return nil, alertdomain.ErrInvalidType
	}
	if req.PumpID != nil {
		pump, err := s.facilityRepo.FindPump(ctx, s.db, *req.PumpID)
		if err != nil {
			return nil, err
		}
		if pump == nil {
			return nil, facilitydomain.ErrPumpNotFound
		}
	}

	alert := &alertdomain.Alert{
		ID:       s.genID.Generate(),
		Message:  message,
		RaisedAt: s.clock.Now(),
		Status:   alertdomain.StatusUnresolved,
		Type:     alertType,
		PumpID:   req.PumpID,
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.log.Info("alert raised", zap.String("alert_id", alert.ID.String()), zap.String("type", alertType))
	return alert, nil
}

// Resolve flips an unresolved alert to resolved. The update is conditioned on
// the current status so concurrent resolves cannot both succeed.
func (s *Service) Resolve(ctx context.Context, id snowflake.ID) (*alertdomain.Alert, error) {
	now := s.clock.Now()
	changed, err := s.alerts.UpdateWhere(ctx,
		&alertdomain.Alert{ID: id, Status: alertdomain.StatusUnresolved},
		map[string]any{"status": alertdomain.StatusResolved, "resolved_at": now},
	)
	if err != nil {
		return nil, err
	}

	alert, err := s.alerts.Take(ctx, &alertdomain.Alert{ID: id})
	if err != nil {
		return nil, err
	}
	switch {
	case alert == nil:
		return nil, alertdomain.ErrNotFound
	case changed == 0:
		return nil, alertdomain.ErrAlreadyResolved
	}
	return alert, nil
}

func (s *Service) ListUnresolved(ctx context.Context) ([]alertdomain.Alert, error) {
	return s.alerts.Find(ctx,
		&alertdomain.Alert{Status: alertdomain.StatusUnresolved},
		repository.OrderBy("raised_at DESC, id DESC"),
	)
}

func (s *Service) CountUnresolved(ctx context.Context) (int64, error) {
	return s.alerts.Count(ctx, &alertdomain.Alert{Status: alertdomain.StatusUnresolved})
}
