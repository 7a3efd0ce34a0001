package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	alertdomain "github.com/smallbiznis/waterline/internal/alert/domain"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/dashboard/domain"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log             *zap.Logger
	ClientSvc       clientdomain.Service
	FacilitySvc     facilitydomain.Service
	FeedbackSvc     feedbackdomain.Service
	AlertSvc        alertdomain.Service
	InvoiceSvc      invoicedomain.Service
	DistributionSvc distributiondomain.Service
}

type Service struct {
	log             *zap.Logger
	clientSvc       clientdomain.Service
	facilitySvc     facilitydomain.Service
	feedbackSvc     feedbackdomain.Service
	alertSvc        alertdomain.Service
	invoiceSvc      invoicedomain.Service
	distributionSvc distributiondomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		log:             p.Log.Named("dashboard.service"),
		clientSvc:       p.ClientSvc,
		facilitySvc:     p.FacilitySvc,
		feedbackSvc:     p.FeedbackSvc,
		alertSvc:        p.AlertSvc,
		invoiceSvc:      p.InvoiceSvc,
		distributionSvc: p.DistributionSvc,
	}
}

func (s *Service) HomeStats(ctx context.Context) (domain.HomeStats, error) {
	activeClients, err := s.clientSvc.Count(ctx, true)
	if err != nil {
		return domain.HomeStats{}, err
	}
	supplied, err := s.facilitySvc.TotalSuppliedVolume(ctx)
	if err != nil {
		return domain.HomeStats{}, err
	}
	pumpsOn, err := s.facilitySvc.CountPumpsOn(ctx)
	if err != nil {
		return domain.HomeStats{}, err
	}
	satisfaction, err := s.feedbackSvc.AverageRating(ctx)
	if err != nil {
		return domain.HomeStats{}, err
	}

	return domain.HomeStats{
		TotalClients:        activeClients,
		TotalVolumeTreated:  supplied,
		ActiveInstallations: pumpsOn,
		AverageSatisfaction: satisfaction,
	}, nil
}

func (s *Service) AdminDashboard(ctx context.Context) (domain.AdminDashboard, error) {
	var (
		out domain.AdminDashboard
		err error
	)
	if out.TotalClients, err = s.clientSvc.Count(ctx, false); err != nil {
		return domain.AdminDashboard{}, err
	}
	if out.ActiveClients, err = s.clientSvc.Count(ctx, true); err != nil {
		return domain.AdminDashboard{}, err
	}
	if out.TotalReservoirs, err = s.facilitySvc.CountReservoirs(ctx); err != nil {
		return domain.AdminDashboard{}, err
	}
	if out.ActivePumps, err = s.facilitySvc.CountPumpsOn(ctx); err != nil {
		return domain.AdminDashboard{}, err
	}
	if out.UnresolvedAlerts, err = s.alertSvc.CountUnresolved(ctx); err != nil {
		return domain.AdminDashboard{}, err
	}
	if out.MonthlyRevenue, err = s.invoiceSvc.RevenueForCurrentMonth(ctx); err != nil {
		return domain.AdminDashboard{}, err
	}
	return out, nil
}

func (s *Service) ClientDashboard(ctx context.Context, clientID snowflake.ID) (domain.ClientDashboard, error) {
	client, err := s.clientSvc.GetByID(ctx, clientID)
	if err != nil {
		return domain.ClientDashboard{}, err
	}
	distributions, err := s.distributionSvc.RecentForClient(ctx, clientID)
	if err != nil {
		return domain.ClientDashboard{}, err
	}
	invoices, err := s.invoiceSvc.RecentForClient(ctx, clientID)
	if err != nil {
		return domain.ClientDashboard{}, err
	}

	if distributions == nil {
		distributions = []distributiondomain.Summary{}
	}
	if invoices == nil {
		invoices = []invoicedomain.Summary{}
	}

	return domain.ClientDashboard{
		ClientInfo: domain.ClientInfo{
			Name:           client.Name,
			Email:          client.Email,
			Balance:        client.Balance,
			ConsumedVolume: client.ConsumedVolume,
		},
		Distributions: distributions,
		Invoices:      invoices,
	}, nil
}
