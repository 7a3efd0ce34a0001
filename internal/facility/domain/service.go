package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateWaterSourceRequest struct {
	Type           string
	Name           string
	Address        string
	Contact        string
	Quality        string
	SuppliedVolume float64
}

type CreateReservoirRequest struct {
	Name            string
	MaxVolume       float64
	AvailableVolume float64
	WaterSourceID   *snowflake.ID
}

// UpdateReservoirRequest leaves nil fields unchanged.
type UpdateReservoirRequest struct {
	MaxVolume       *float64
	AvailableVolume *float64
}

type CreatePumpRequest struct {
	Name        string
	State       string
	FlowRate    float64
	ReservoirID snowflake.ID
}

type RecordEnergyRequest struct {
	Type               string
	MonthlyProduction  float64
	MonthlyConsumption float64
	PumpID             snowflake.ID
}

type RecordFiltrationRequest struct {
	FilterType      string
	Efficiency      float64
	LastMaintenance time.Time
	PumpID          snowflake.ID
}

type Service interface {
	CreateWaterSource(ctx context.Context, req CreateWaterSourceRequest) (*WaterSource, error)
	TotalSuppliedVolume(ctx context.Context) (float64, error)

	CreateReservoir(ctx context.Context, req CreateReservoirRequest) (*Reservoir, error)
	UpdateReservoir(ctx context.Context, id snowflake.ID, req UpdateReservoirRequest) (*Reservoir, error)
	CountReservoirs(ctx context.Context) (int64, error)
	WaterLevels(ctx context.Context) ([]WaterLevel, error)

	CreatePump(ctx context.Context, req CreatePumpRequest) (*Pump, error)
	GetPump(ctx context.Context, id snowflake.ID) (*Pump, error)
	SetPumpState(ctx context.Context, id snowflake.ID, state string) (*Pump, error)
	CountPumpsOn(ctx context.Context) (int64, error)
	PumpStatus(ctx context.Context) ([]PumpStatus, error)

	RecordEnergy(ctx context.Context, req RecordEnergyRequest) (*Energy, error)
	EnergyProduction(ctx context.Context) ([]EnergyTotal, error)

	RecordFiltration(ctx context.Context, req RecordFiltrationRequest) (*Filtration, error)
	Filtrations(ctx context.Context) ([]FiltrationView, error)
}

var (
	ErrInvalidName           = errors.New("invalid_name")
	ErrInvalidType           = errors.New("invalid_type")
	ErrInvalidQuality        = errors.New("invalid_quality")
	ErrInvalidContact        = errors.New("invalid_contact")
	ErrInvalidVolume         = errors.New("invalid_volume")
	ErrInvalidCapacity       = errors.New("invalid_capacity")
	ErrInvalidFlowRate       = errors.New("invalid_flow_rate")
	ErrInvalidState          = errors.New("invalid_state")
	ErrInvalidEfficiency     = errors.New("invalid_efficiency")
	ErrInvalidEnergy         = errors.New("invalid_energy")
	ErrInvalidMaintenanceDay = errors.New("invalid_maintenance_date")
	ErrWaterSourceNotFound   = errors.New("water_source_not_found")
	ErrReservoirNotFound     = errors.New("reservoir_not_found")
	ErrPumpNotFound          = errors.New("pump_not_found")
)
