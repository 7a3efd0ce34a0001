package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
)

const (
	StatusUnresolved = "unresolved"
	StatusResolved   = "resolved"
)

type Alert struct {
	ID         snowflake.ID         `gorm:"primaryKey" json:"id"`
	Message    string               `gorm:"type:text;not null" json:"message"`
	RaisedAt   time.Time            `gorm:"not null;index" json:"date_alerte"`
	Status     string               `gorm:"type:varchar(50);not null;default:'unresolved';index" json:"statut"`
	Type       string               `gorm:"type:varchar(50);not null" json:"type_alerte"`
	PumpID     *snowflake.ID        `gorm:"index" json:"pompe_id,omitempty"`
	Pump       *facilitydomain.Pump `gorm:"foreignKey:PumpID;constraint:OnDelete:SET NULL" json:"-"`
	ResolvedAt *time.Time           `json:"resolved_at,omitempty"`
}

func (Alert) TableName() string { return "alerts" }

type RaiseRequest struct {
	Message string
	Type    string
	PumpID  *snowflake.ID
}

type Service interface {
	Raise(ctx context.Context, req RaiseRequest) (*Alert, error)
	Resolve(ctx context.Context, id snowflake.ID) (*Alert, error)
	ListUnresolved(ctx context.Context) ([]Alert, error)
	CountUnresolved(ctx context.Context) (int64, error)
}

var (
	ErrInvalidMessage  = errors.New("invalid_message")
	ErrInvalidType     = errors.New("invalid_type")
	ErrNotFound        = errors.New("alert_not_found")
	ErrAlreadyResolved = errors.New("alert_already_resolved")
)
