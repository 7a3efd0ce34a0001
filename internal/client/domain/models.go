package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Client is a water consumer. ConsumedVolume and Balance only move through SQL increments.
type Client struct {
	ID             snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name           string           `gorm:"type:varchar(100);not null" json:"nom"`
	Email          string           `gorm:"type:varchar(254);not null;uniqueIndex" json:"email"`
	Phone          string           `gorm:"type:varchar(15);not null;default:''" json:"telephone"`
	Address        string           `gorm:"type:text;not null;default:''" json:"adresse"`
	ConsumedVolume float64          `gorm:"not null;default:0" json:"volume_consomme"`
	Balance        float64          `gorm:"not null;default:0" json:"solde"`
	PaymentStatus  string           `gorm:"type:varchar(50);not null;default:'unpaid'" json:"statut_paiement"`
	Active         bool             `gorm:"not null;default:true" json:"actif"`
	UserID         *snowflake.ID    `gorm:"uniqueIndex" json:"-"`
	User           *authdomain.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Client) TableName() string { return "clients" }
