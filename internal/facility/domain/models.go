package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	PumpStateOn  = "ON"
	PumpStateOff = "OFF"
)

type WaterSource struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Type           string       `gorm:"type:varchar(50);not null" json:"type_source"`
	Name           string       `gorm:"type:varchar(100);not null" json:"nom"`
	Address        string       `gorm:"type:text;not null;default:''" json:"adresse"`
	Contact        string       `gorm:"type:varchar(50);not null;default:''" json:"contact"`
	Quality        string       `gorm:"type:varchar(50);not null" json:"qualite_eau"`
	SuppliedVolume float64      `gorm:"not null;default:0" json:"volume_fournit"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (WaterSource) TableName() string { return "water_sources" }

// Reservoir keeps 0 <= AvailableVolume <= MaxVolume on every write.
type Reservoir struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"type:varchar(100);not null" json:"nom"`
	MaxVolume       float64       `gorm:"not null" json:"volume_max"`
	AvailableVolume float64       `gorm:"not null;check:available_volume >= 0 AND available_volume <= max_volume" json:"volume_disponible"`
	WaterSourceID   *snowflake.ID `gorm:"index" json:"source_id,omitempty"`
	WaterSource     *WaterSource  `gorm:"foreignKey:WaterSourceID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Reservoir) TableName() string { return "reservoirs" }

type Pump struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(100);not null" json:"nom"`
	State       string       `gorm:"type:varchar(50);not null;default:'OFF';index" json:"etat"`
	FlowRate    float64      `gorm:"not null" json:"debit"`
	ReservoirID snowflake.ID `gorm:"not null;index" json:"reservoir_id"`
	Reservoir   *Reservoir   `gorm:"foreignKey:ReservoirID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Pump) TableName() string { return "pumps" }

type Energy struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	Type               string       `gorm:"type:varchar(50);not null;index" json:"type_energie"`
	MonthlyProduction  float64      `gorm:"not null" json:"production_mensuelle"`
	MonthlyConsumption float64      `gorm:"not null" json:"consommation_mensuelle"`
	PumpID             snowflake.ID `gorm:"not null;index" json:"pompe_id"`
	Pump               *Pump        `gorm:"foreignKey:PumpID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Energy) TableName() string { return "energies" }

type Filtration struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	FilterType      string       `gorm:"type:varchar(100);not null" json:"type_filtre"`
	Efficiency      float64      `gorm:"not null" json:"efficacite"`
	LastMaintenance time.Time    `gorm:"not null" json:"-"`
	PumpID          snowflake.ID `gorm:"not null;index" json:"pompe_id"`
	Pump            *Pump        `gorm:"foreignKey:PumpID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Filtration) TableName() string { return "filtrations" }

// FillLevel returns available/max as a percentage. A non-positive max has no defined
// level: the result is 0 and valid is false.
func FillLevel(available, max float64) (level float64, valid bool) {
	if max <= 0 {
		return 0, false
	}
	return available / max * 100, true
}
