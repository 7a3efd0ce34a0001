// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
)

const (
	PaymentStatusUnpaid = clientdomain.PaymentStatusUnpaid
	PaymentStatusPaid   = clientdomain.PaymentStatusPaid
)

// Invoice bills exactly one distribution. Date is stored at UTC midnight.
type Invoice struct {
	ID             snowflake.ID                     `gorm:"primaryKey" json:"id"`
	Date           time.Time                        `gorm:"column:issued_on;not null;index" json:"-"`
	TotalAmount    float64                          `gorm:"not null" json:"montant"`
	PaymentStatus  string                           `gorm:"type:varchar(50);not null;default:'unpaid'" json:"statut"`
	ClientID       snowflake.ID                     `gorm:"not null;index" json:"client_id"`
	Client         *clientdomain.Client             `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	DistributionID snowflake.ID                     `gorm:"not null;uniqueIndex" json:"distribution_id"`
	Distribution   *distributiondomain.Distribution `gorm:"foreignKey:DistributionID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time                        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

type Summary struct {
	ID     snowflake.ID `json:"id"`
	Date   string       `json:"date"`
	Amount float64      `json:"montant"`
	Status string       `json:"statut"`
}

// DocumentRow joins an invoice with its client and distribution for rendering.
type DocumentRow struct {
	ID            snowflake.ID
	IssuedOn      time.Time
	TotalAmount   float64
	PaymentStatus string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	Volume        float64
	DistributedOn time.Time
}
