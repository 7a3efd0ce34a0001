package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}

type Service interface {
	// Register creates the login identity and the client row in one transaction.
	Register(ctx context.Context, req RegisterRequest) (*Client, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Client, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPhone = errors.New("invalid_phone")
	ErrEmailTaken   = errors.New("email_taken")
	ErrNotFound     = errors.New("client_not_found")
)
