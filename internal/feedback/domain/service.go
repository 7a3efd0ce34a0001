package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type SubmitRequest struct {
	ClientID snowflake.ID
	Comment  string
	// Rating is nil when the caller omitted it.
	Rating *float64
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Feedback, error)
	ListPositive(ctx context.Context) ([]Positive, error)
	AverageRating(ctx context.Context) (float64, error)
}

var (
	ErrInvalidRating  = errors.New("invalid_rating")
	ErrInvalidComment = errors.New("invalid_comment")
)
