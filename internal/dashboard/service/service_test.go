package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	alertdomain "github.com/smallbiznis/waterline/internal/alert/domain"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/dashboard/domain"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClients struct {
	clientdomain.Service
	total, active int64
	client        *clientdomain.Client
}

func (s stubClients) Count(_ context.Context, activeOnly bool) (int64, error) {
	if activeOnly {
		return s.active, nil
	}
	return s.total, nil
}

func (s stubClients) GetByID(_ context.Context, id snowflake.ID) (*clientdomain.Client, error) {
	if s.client == nil || s.client.ID != id {
		return nil, clientdomain.ErrNotFound
	}
	return s.client, nil
}

type stubFacility struct {
	facilitydomain.Service
	supplied   float64
	pumpsOn    int64
	reservoirs int64
	err        error
}

func (s stubFacility) TotalSuppliedVolume(context.Context) (float64, error) { return s.supplied, s.err }
func (s stubFacility) CountPumpsOn(context.Context) (int64, error) { return s.pumpsOn, s.err }
func (s stubFacility) CountReservoirs(context.Context) (int64, error) { return s.reservoirs, s.err }

type stubFeedback struct {
	feedbackdomain.Service
	avg float64
}

func (s stubFeedback) AverageRating(context.Context) (float64, error) { return s.avg, nil }

type stubAlerts struct {
	alertdomain.Service
	unresolved int64
}

func (s stubAlerts) CountUnresolved(context.Context) (int64, error) { return s.unresolved, nil }

type stubInvoices struct {
	invoicedomain.Service
	revenue float64
	recent  []invoicedomain.Summary
}

func (s stubInvoices) RevenueForCurrentMonth(context.Context) (float64, error) { return s.revenue, nil }
func (s stubInvoices) RecentForClient(context.Context, snowflake.ID) ([]invoicedomain.Summary, error) {
	return s.recent, nil
}

type stubDistributions struct {
	distributiondomain.Service
	recent []distributiondomain.Summary
}

func (s stubDistributions) RecentForClient(context.Context, snowflake.ID) ([]distributiondomain.Summary, error) {
	return s.recent, nil
}

func newService(p Params) domain.Service {
	p.Log = zap.NewNop()
	return NewService(p)
}

func TestHomeStats(t *testing.T) {
	svc := newService(Params{
		ClientSvc:   stubClients{total: 5, active: 3},
		FacilitySvc: stubFacility{supplied: 1200.5, pumpsOn: 2},
		FeedbackSvc: stubFeedback{avg: 4.125},
	})

	stats, err := svc.HomeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.HomeStats{
		TotalClients:        3,
		TotalVolumeTreated:  1200.5,
		ActiveInstallations: 2,
		AverageSatisfaction: 4.125,
	}, stats)
}

func TestHomeStatsPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := newService(Params{
		ClientSvc:   stubClients{},
		FacilitySvc: stubFacility{err: boom},
		FeedbackSvc: stubFeedback{},
	})

	_, err := svc.HomeStats(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestAdminDashboard(t *testing.T) {
	svc := newService(Params{
		ClientSvc:   stubClients{total: 7, active: 6},
		FacilitySvc: stubFacility{reservoirs: 3, pumpsOn: 4},
		AlertSvc:    stubAlerts{unresolved: 2},
		InvoiceSvc:  stubInvoices{revenue: 315.75},
	})

	out, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AdminDashboard{
		TotalClients:     7,
		ActiveClients:    6,
		TotalReservoirs:  3,
		ActivePumps:      4,
		UnresolvedAlerts: 2,
		MonthlyRevenue:   315.75,
	}, out)
}

func TestClientDashboard(t *testing.T) {
	client := &clientdomain.Client{ID: 42, Name: "Awa", Email: "awa@example.com", Balance: 30, ConsumedVolume: 20}
	svc := newService(Params{
		ClientSvc:       stubClients{client: client},
		InvoiceSvc:      stubInvoices{recent: []invoicedomain.Summary{{ID: 1, Date: "2026-03-02", Amount: 30}}},
		DistributionSvc: stubDistributions{},
	})

	out, err := svc.ClientDashboard(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.ClientInfo{Name: "Awa", Email: "awa@example.com", Balance: 30, ConsumedVolume: 20}, out.ClientInfo)
	assert.NotNil(t, out.Distributions)
	assert.Empty(t, out.Distributions)
	require.Len(t, out.Invoices, 1)

	_, err = svc.ClientDashboard(context.Background(), 7)
	assert.ErrorIs(t, err, clientdomain.ErrNotFound)
}
