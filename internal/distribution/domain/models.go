package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
)

// Distribution is one delivery of water to a client. Date is stored at UTC midnight.
type Distribution struct {
	ID        snowflake.ID         `gorm:"primaryKey" json:"id"`
	Date      time.Time            `gorm:"column:distributed_on;not null;index" json:"-"`
	Volume    float64              `gorm:"not null" json:"volume"`
	ClientID  snowflake.ID         `gorm:"not null;index" json:"client_id"`
	Client    *clientdomain.Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	PumpID    *snowflake.ID        `gorm:"index" json:"pompe_id,omitempty"`
	Pump      *facilitydomain.Pump `gorm:"foreignKey:PumpID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Distribution) TableName() string { return "distributions" }

type MonthlyVolume struct {
	Month       string  `json:"mois"`
	TotalVolume float64 `json:"total_volume"`
}

type Summary struct {
	ID     snowflake.ID `json:"id"`
	Date   string       `json:"date"`
	Volume float64      `json:"volume"`
}
