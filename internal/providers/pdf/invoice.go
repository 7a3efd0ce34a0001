package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type InvoiceData struct {
	UtilityName   string
	InvoiceNumber string
	IssueDate     string
	PaymentStatus string

	BillToName    string
	BillToAddress string
	BillToEmail   string

	DistributionDate string
	Volume           string
	UnitPrice        string
	Total            string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, invoice InvoiceData) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, invoice.UtilityName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "Facture", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Facture n° "+invoice.InvoiceNumber, props.Text{Top: 0}),
			text.New("Date: "+invoice.IssueDate, props.Text{Top: 5}),
			text.New("Statut: "+invoice.PaymentStatus, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Client", props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New(invoice.BillToName, props.Text{Top: 5, Align: align.Right}),
			text.New(invoice.BillToAddress, props.Text{Top: 10, Align: align.Right}),
			text.New(invoice.BillToEmail, props.Text{Top: 15, Align: align.Right}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Distribution", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Volume (m³)", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Prix unitaire", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Montant", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, col.New(12))

	m.AddRow(10,
		text.NewCol(6, fmt.Sprintf("Eau distribuée le %s", invoice.DistributionDate), props.Text{Size: 9}),
		text.NewCol(2, invoice.Volume, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, invoice.UnitPrice, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, invoice.Total, props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, invoice.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
