package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertWaterSource(ctx context.Context, db *gorm.DB, source *WaterSource) error
	FindWaterSource(ctx context.Context, db *gorm.DB, id snowflake.ID) (*WaterSource, error)
	SumSuppliedVolume(ctx context.Context, db *gorm.DB) (float64, error)

	InsertReservoir(ctx context.Context, db *gorm.DB, reservoir *Reservoir) error
	FindReservoir(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Reservoir, error)
	UpdateReservoirVolumes(ctx context.Context, db *gorm.DB, id snowflake.ID, maxVolume, availableVolume float64) error
	ListReservoirs(ctx context.Context, db *gorm.DB) ([]Reservoir, error)
	CountReservoirs(ctx context.Context, db *gorm.DB) (int64, error)

	InsertPump(ctx context.Context, db *gorm.DB, pump *Pump) error
	FindPump(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Pump, error)
	UpdatePumpState(ctx context.Context, db *gorm.DB, id snowflake.ID, state string) error
	CountPumpsByState(ctx context.Context, db *gorm.DB, state string) (int64, error)
	ListPumpStatus(ctx context.Context, db *gorm.DB) ([]PumpStatus, error)

	InsertEnergy(ctx context.Context, db *gorm.DB, energy *Energy) error
	SumEnergyByType(ctx context.Context, db *gorm.DB) ([]EnergyTotal, error)

	InsertFiltration(ctx context.Context, db *gorm.DB, filtration *Filtration) error
	ListFiltrations(ctx context.Context, db *gorm.DB) ([]FiltrationRow, error)
}

// FiltrationRow is a filtration joined with its pump name.
type FiltrationRow struct {
	ID              snowflake.ID
	FilterType      string
	Efficiency      float64
	LastMaintenance time.Time
	PumpID          snowflake.ID
	PumpName        string
}
