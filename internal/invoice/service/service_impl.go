package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	"github.com/smallbiznis/waterline/internal/invoice/domain"
	"github.com/smallbiznis/waterline/internal/invoice/format"
	"github.com/smallbiznis/waterline/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	Config       config.Config
	DashboardCfg *config.DashboardConfigHolder
	Repo         domain.Repository
	PDF          pdf.Provider
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	utilityName  string
	dashboardCfg *config.DashboardConfigHolder
	repo         domain.Repository
	pdf          pdf.Provider
}

func NewService(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invoice.service"),
		clock:        p.Clock,
		utilityName:  p.Config.AppName,
		dashboardCfg: p.DashboardCfg,
		repo:         p.Repo,
		pdf:          p.PDF,
	}
}

func (s *Service) RevenueForCurrentMonth(ctx context.Context) (float64, error) {
	from := clock.StartOfMonth(s.clock.Now())
	to := from.AddDate(0, 1, 0)
	return s.repo.SumAmount(ctx, s.db, from, to)
}

func (s *Service) RecentForClient(ctx context.Context, clientID snowflake.ID) ([]domain.Summary, error) {
	invoices, err := s.repo.ListRecentForClient(ctx, s.db, clientID, s.dashboardCfg.Get().RecentInvoices)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.Summary, 0, len(invoices))
	for _, invoice := range invoices {
		summaries = append(summaries, domain.Summary{
			ID:     invoice.ID,
			Date:   invoice.Date.UTC().Format(dateLayout),
			Amount: invoice.TotalAmount,
			Status: invoice.PaymentStatus,
		})
	}
	return summaries, nil
}

func (s *Service) GetForClient(ctx context.Context, clientID, id snowflake.ID) (*domain.Invoice, error) {
	invoice, err := s.repo.FindForClient(ctx, s.db, clientID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) RenderPDF(ctx context.Context, clientID, id snowflake.ID) (io.Reader, string, error) {
	row, err := s.repo.FindDocument(ctx, s.db, clientID, id)
	if err != nil {
		return nil, "", err
	}
	if row == nil {
		return nil, "", domain.ErrNotFound
	}

	cfg := s.dashboardCfg.Get()
	number, err := s.invoiceNumber(cfg.InvoiceNumberTemplate, row.IssuedOn, int64(row.ID))
	if err != nil {
		return nil, "", err
	}

	currency := cfg.Currency
	unitPrice := 0.0
	if row.Volume > 0 {
		unitPrice = row.TotalAmount / row.Volume
	}

	body, err := s.pdf.GenerateInvoice(ctx, pdf.InvoiceData{
		UtilityName:      s.utilityName,
		InvoiceNumber:    number,
		IssueDate:        row.IssuedOn.UTC().Format(dateLayout),
		PaymentStatus:    row.PaymentStatus,
		BillToName:       row.ClientName,
		BillToAddress:    row.ClientAddress,
		BillToEmail:      row.ClientEmail,
		DistributionDate: row.DistributedOn.UTC().Format(dateLayout),
		Volume:           fmt.Sprintf("%.2f", row.Volume),
		UnitPrice:        fmt.Sprintf("%.2f %s", unitPrice, currency),
		Total:            fmt.Sprintf("%.2f %s", row.TotalAmount, currency),
	})
	if err != nil {
		s.log.Error("failed to render invoice pdf", zap.String("invoice_id", id.String()), zap.Error(err))
		return nil, "", err
	}

	return body, slug.Make(number) + ".pdf", nil
}

// invoiceNumber falls back to the default layout when the configured template does not parse.
func (s *Service) invoiceNumber(template string, issuedOn time.Time, id int64) (string, error) {
	number, err := format.ParseNumber(template)
	if err != nil {
		s.log.Warn("invalid invoice number template, using default", zap.String("template", template), zap.Error(err))
		number, err = format.ParseNumber(format.DefaultNumberTemplate)
		if err != nil {
			return "", err
		}
	}
	return number.Render(issuedOn, id)
}
