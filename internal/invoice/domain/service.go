package domain

import (
	"context"
	"errors"
	"io"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// RevenueForCurrentMonth sums invoice amounts dated in the current calendar month.
	RevenueForCurrentMonth(ctx context.Context) (float64, error)
	RecentForClient(ctx context.Context, clientID snowflake.ID) ([]Summary, error)
	GetForClient(ctx context.Context, clientID, id snowflake.ID) (*Invoice, error)
	// RenderPDF returns the PDF body and a download file name.
	RenderPDF(ctx context.Context, clientID, id snowflake.ID) (io.Reader, string, error)
}

var ErrNotFound = errors.New("invoice_not_found")
