package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type RecordRequest struct {
	ClientID snowflake.ID
	PumpID   *snowflake.ID
	Volume   float64
	// Date defaults to today when zero.
	Date time.Time
}

type RecordResult struct {
	Distribution Distribution
	InvoiceID    snowflake.ID
	Amount       float64
}

type Service interface {
	// Record stores the distribution, bills it and updates the client's totals in one transaction.
	Record(ctx context.Context, req RecordRequest) (*RecordResult, error)
	MonthlyVolumes(ctx context.Context) ([]MonthlyVolume, error)
	RecentForClient(ctx context.Context, clientID snowflake.ID) ([]Summary, error)
}

var (
	ErrInvalidVolume = errors.New("invalid_volume")
	ErrInvalidDate   = errors.New("invalid_date")
)
