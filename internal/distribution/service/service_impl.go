package service

import (
	"context"
	"math"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	"github.com/smallbiznis/waterline/internal/distribution/domain"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
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
	FacilityRepo facilitydomain.Repository
	InvoiceRepo  invoicedomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	dashboardCfg *config.DashboardConfigHolder
	repo         domain.Repository
	clientRepo   clientdomain.Repository
	facilityRepo facilitydomain.Repository
	invoiceRepo  invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("distribution.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		dashboardCfg: p.DashboardCfg,
		repo:         p.Repo,
		clientRepo:   p.ClientRepo,
		facilityRepo: p.FacilityRepo,
		invoiceRepo:  p.InvoiceRepo,
	}
}

// maxVolume bounds a single delivery so client totals stay finite.
const maxVolume = 1e12

func (s *Service) Record(ctx context.Context, req domain.RecordRequest) (*domain.RecordResult, error) {
	if math.IsNaN(req.Volume) || math.IsInf(req.Volume, 0) || req.Volume <= 0 || req.Volume > maxVolume {
		return nil, domain.ErrInvalidVolume
	}

	today := clock.Today(s.clock)
	date := today
	if !req.Date.IsZero() {
		date = clock.StartOfDay(req.Date)
		if date.After(today) {
			return nil, domain.ErrInvalidDate
		}
	}

	tariff := s.dashboardCfg.Get().TariffPerCubicMeter
	amount := math.Round(req.Volume*tariff*100) / 100
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, domain.ErrInvalidVolume
	}

	var result *domain.RecordResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.clientRepo.FindByID(ctx, tx, req.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return clientdomain.ErrNotFound
		}
		if req.PumpID != nil {
			pump, err := s.facilityRepo.FindPump(ctx, tx, *req.PumpID)
			if err != nil {
				return err
			}
			if pump == nil {
				return facilitydomain.ErrPumpNotFound
			}
		}

		now := s.clock.Now()
		distribution := domain.Distribution{
			ID:        s.genID.Generate(),
			Date:      date,
			Volume:    req.Volume,
			ClientID:  client.ID,
			PumpID:    req.PumpID,
			CreatedAt: now,
		}
		if err := s.repo.Insert(ctx, tx, &distribution); err != nil {
			return err
		}

		invoice := invoicedomain.Invoice{
			ID:             s.genID.Generate(),
			Date:           date,
			TotalAmount:    amount,
			PaymentStatus:  invoicedomain.PaymentStatusUnpaid,
			ClientID:       client.ID,
			DistributionID: distribution.ID,
			CreatedAt:      now,
		}
		if err := s.invoiceRepo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}

		if err := s.clientRepo.AddConsumption(ctx, tx, client.ID, req.Volume, amount); err != nil {
			return err
		}

		result = &domain.RecordResult{
			Distribution: distribution,
			InvoiceID:    invoice.ID,
			Amount:       amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("distribution recorded",
		zap.String("distribution_id", result.Distribution.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.Float64("volume", req.Volume),
	)
	return result, nil
}

func (s *Service) MonthlyVolumes(ctx context.Context) ([]domain.MonthlyVolume, error) {
	window := s.dashboardCfg.Get().DistributionWindowDays
	since := clock.Today(s.clock).AddDate(0, 0, -window)

	rows, err := s.repo.MonthlyVolumes(ctx, s.db, since)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.MonthlyVolume{}
	}
	return rows, nil
}

func (s *Service) RecentForClient(ctx context.Context, clientID snowflake.ID) ([]domain.Summary, error) {
	rows, err := s.repo.ListRecentForClient(ctx, s.db, clientID, s.dashboardCfg.Get().RecentDistributions)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.Summary{
			ID:     row.ID,
			Date:   row.Date.UTC().Format(dateLayout),
			Volume: row.Volume,
		})
	}
	return summaries, nil
}
