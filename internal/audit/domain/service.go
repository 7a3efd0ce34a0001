package domain

import (
	"context"
	"errors"
)

type ListAuditLogRequest struct {
	Action     string
	ActorType  string
	TargetType string
	TargetID   string
	Limit      int
}

type Service interface {
	// AuditLog records one entry. Empty actorType falls back to the actor carried by ctx.
	AuditLog(ctx context.Context, actorType string, actorID *string, action string, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, req ListAuditLogRequest) ([]AuditLog, error)
}

var (
	ErrInvalidAction = errors.New("invalid_action")
	ErrInvalidLimit  = errors.New("invalid_limit")
)
