package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	clientrepository "github.com/smallbiznis/waterline/internal/client/repository"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	"github.com/smallbiznis/waterline/internal/distribution/domain"
	"github.com/smallbiznis/waterline/internal/distribution/repository"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	facilityrepository "github.com/smallbiznis/waterline/internal/facility/repository"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
	invoicerepository "github.com/smallbiznis/waterline/internal/invoice/repository"
	"github.com/smallbiznis/waterline/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, time.May, 15, 9, 30, 0, 0, time.UTC)

type failingInvoiceRepo struct {
	invoicedomain.Repository
}

func (failingInvoiceRepo) Insert(context.Context, *gorm.DB, *invoicedomain.Invoice) error {
	return errors.New("write failed")
}

func newTestService(t *testing.T, invoiceRepo invoicedomain.Repository) (domain.Service, *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&authdomain.User{},
		&clientdomain.Client{},
		&facilitydomain.WaterSource{},
		&facilitydomain.Reservoir{},
		&facilitydomain.Pump{},
		&domain.Distribution{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	if invoiceRepo == nil {
		invoiceRepo = invoicerepository.Provide()
	}
	cfg := config.DefaultDashboardConfig()
	cfg.TariffPerCubicMeter = 2.5

	return New(Params{
		DB:           conn,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        clock.NewFakeClock(testNow),
		DashboardCfg: config.NewStaticDashboardConfigHolder(cfg),
		Repo:         repository.Provide(),
		ClientRepo:   clientrepository.Provide(),
		FacilityRepo: facilityrepository.Provide(),
		InvoiceRepo:  invoiceRepo,
	}), conn
}

func seedClient(t *testing.T, conn *gorm.DB, id snowflake.ID) {
	t.Helper()
	require.NoError(t, conn.Create(&clientdomain.Client{
		ID:            id,
		Name:          "Client",
		Email:         id.String() + "@example.com",
		PaymentStatus: clientdomain.PaymentStatusUnpaid,
		Active:        true,
	}).Error)
}

func TestRecordBillsAndUpdatesClientTotals(t *testing.T) {
	svc, conn := newTestService(t, nil)
	ctx := context.Background()
	seedClient(t, conn, 100)

	result, err := svc.Record(ctx, domain.RecordRequest{ClientID: 100, Volume: 4})
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Amount)
	assert.Equal(t, clock.StartOfDay(testNow), result.Distribution.Date)

	_, err = svc.Record(ctx, domain.RecordRequest{ClientID: 100, Volume: 2, Date: testNow.AddDate(0, 0, -3)})
	require.NoError(t, err)

	var client clientdomain.Client
	require.NoError(t, conn.First(&client, "id = ?", 100).Error)
	assert.Equal(t, 6.0, client.ConsumedVolume)
	assert.Equal(t, 15.0, client.Balance)

	var invoice invoicedomain.Invoice
	require.NoError(t, conn.First(&invoice, "id = ?", result.InvoiceID).Error)
	assert.Equal(t, result.Distribution.ID, invoice.DistributionID)
	assert.Equal(t, invoicedomain.PaymentStatusUnpaid, invoice.PaymentStatus)
}

func TestRecordValidation(t *testing.T) {
	svc, conn := newTestService(t, nil)
	ctx := context.Background()
	seedClient(t, conn, 100)

	_, err := svc.Record(ctx, domain.RecordRequest{ClientID: 100, Volume: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidVolume)

	_, err = svc.Record(ctx, domain.RecordRequest{ClientID: 100, Volume: 1, Date: testNow.AddDate(0, 0, 2)})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = svc.Record(ctx, domain.RecordRequest{ClientID: 999, Volume: 1})
	assert.ErrorIs(t, err, clientdomain.ErrNotFound)

	pumpID := snowflake.ID(555)
	_, err = svc.Record(ctx, domain.RecordRequest{ClientID: 100, Volume: 1, PumpID: &pumpID})
	assert.ErrorIs(t, err, facilitydomain.ErrPumpNotFound)
}

func TestRecordRejectsOversizedVolume(t *testing.T) {
	svc, conn := newTestService(t, nil)
	seedClient(t, conn, 100)

	_, err := svc.Record(context.Background(), domain.RecordRequest{ClientID: 100, Volume: 1.7e308})
	assert.ErrorIs(t, err, domain.ErrInvalidVolume)

	var distributions int64
	require.NoError(t, conn.Model(&domain.Distribution{}).Count(&distributions).Error)
	assert.Zero(t, distributions)

	var client clientdomain.Client
	require.NoError(t, conn.First(&client, "id = ?", 100).Error)
	assert.Zero(t, client.ConsumedVolume)
	assert.Zero(t, client.Balance)
}

func TestRecordRollsBackWhenInvoiceFails(t *testing.T) {
	svc, conn := newTestService(t, failingInvoiceRepo{Repository: invoicerepository.Provide()})
	seedClient(t, conn, 100)

	_, err := svc.Record(context.Background(), domain.RecordRequest{ClientID: 100, Volume: 3})
	require.Error(t, err)

	var distributions int64
	require.NoError(t, conn.Model(&domain.Distribution{}).Count(&distributions).Error)
	assert.Zero(t, distributions)

	var client clientdomain.Client
	require.NoError(t, conn.First(&client, "id = ?", 100).Error)
	assert.Zero(t, client.ConsumedVolume)
}

func TestMonthlyVolumesTrailingYearAscending(t *testing.T) {
	svc, conn := newTestService(t, nil)
	seedClient(t, conn, 100)

	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	rows := []domain.Distribution{
		{ID: 1, Date: day(2025, time.May, 10), Volume: 99, ClientID: 100},
		{ID: 2, Date: day(2025, time.June, 1), Volume: 10, ClientID: 100},
		{ID: 3, Date: day(2025, time.June, 20), Volume: 5.5, ClientID: 100},
		{ID: 4, Date: day(2026, time.January, 5), Volume: 7, ClientID: 100},
		{ID: 5, Date: day(2026, time.May, 14), Volume: 1, ClientID: 100},
	}
	for i := range rows {
		require.NoError(t, conn.Create(&rows[i]).Error)
	}

	got, err := svc.MonthlyVolumes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.MonthlyVolume{
		{Month: "2025-06", TotalVolume: 15.5},
		{Month: "2026-01", TotalVolume: 7},
		{Month: "2026-05", TotalVolume: 1},
	}, got)
}

func TestMonthlyVolumesEmpty(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got, err := svc.MonthlyVolumes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecentForClientNewestFirstLimited(t *testing.T) {
	svc, conn := newTestService(t, nil)
	seedClient(t, conn, 100)
	seedClient(t, conn, 200)

	for i := 0; i < 12; i++ {
		require.NoError(t, conn.Create(&domain.Distribution{
			ID:       snowflake.ID(1000 + i),
			Date:     clock.StartOfDay(testNow).AddDate(0, 0, -i),
			Volume:   float64(i + 1),
			ClientID: 100,
		}).Error)
	}
	require.NoError(t, conn.Create(&domain.Distribution{ID: 5000, Date: clock.StartOfDay(testNow), Volume: 1, ClientID: 200}).Error)

	got, err := svc.RecentForClient(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "2026-05-15", got[0].Date)
	assert.Equal(t, snowflake.ID(1000), got[0].ID)
	assert.Equal(t, "2026-05-06", got[9].Date)
}
