package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/waterline/internal/facility/domain"
	"github.com/smallbiznis/waterline/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertWaterSource(ctx context.Context, db *gorm.DB, source *domain.WaterSource) error {
	return db.WithContext(ctx).Create(source).Error
}

func (r *repo) FindWaterSource(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.WaterSource, error) {
	var source domain.WaterSource
	err := db.WithContext(ctx).Where("id = ?", id).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *repo) SumSuppliedVolume(ctx context.Context, db *gorm.DB) (float64, error) {
	var total float64
	err := db.WithContext(ctx).
		Model(&domain.WaterSource{}).
		Select("COALESCE(SUM(supplied_volume), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repo) InsertReservoir(ctx context.Context, conn *gorm.DB, reservoir *domain.Reservoir) error {
	return capacityErr(conn.WithContext(ctx).Create(reservoir).Error)
}

func (r *repo) FindReservoir(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Reservoir, error) {
	var reservoir domain.Reservoir
	err := db.WithContext(ctx).Where("id = ?", id).First(&reservoir).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservoir, nil
}

func (r *repo) UpdateReservoirVolumes(ctx context.Context, db *gorm.DB, id snowflake.ID, maxVolume, availableVolume float64) error {
	tx := db.WithContext(ctx).
		Model(&domain.Reservoir{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"max_volume":       maxVolume,
			"available_volume": availableVolume,
		})
	if tx.Error != nil {
		return capacityErr(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrReservoirNotFound
	}
	return nil
}

func (r *repo) ListReservoirs(ctx context.Context, db *gorm.DB) ([]domain.Reservoir, error) {
	var reservoirs []domain.Reservoir
	err := db.WithContext(ctx).Order("name asc, id asc").Find(&reservoirs).Error
	return reservoirs, err
}

func (r *repo) CountReservoirs(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Reservoir{}).Count(&count).Error
	return count, err
}

func (r *repo) InsertPump(ctx context.Context, db *gorm.DB, pump *domain.Pump) error {
	return db.WithContext(ctx).Create(pump).Error
}

func (r *repo) FindPump(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Pump, error) {
	var pump domain.Pump
	err := db.WithContext(ctx).Where("id = ?", id).First(&pump).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pump, nil
}

func (r *repo) UpdatePumpState(ctx context.Context, db *gorm.DB, id snowflake.ID, state string) error {
	tx := db.WithContext(ctx).
		Model(&domain.Pump{}).
		Where("id = ?", id).
		Update("state", state)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrPumpNotFound
	}
	return nil
}

func (r *repo) CountPumpsByState(ctx context.Context, db *gorm.DB, state string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Pump{}).Where("state = ?", state).Count(&count).Error
	return count, err
}

func (r *repo) ListPumpStatus(ctx context.Context, db *gorm.DB) ([]domain.PumpStatus, error) {
	var rows []domain.PumpStatus
	err := db.WithContext(ctx).Raw(
		`SELECT p.id AS id, p.name AS name, p.state AS state, p.flow_rate AS flow_rate, r.name AS reservoir
		 FROM pumps p
		 JOIN reservoirs r ON r.id = p.reservoir_id
		 ORDER BY p.name ASC, p.id ASC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) InsertEnergy(ctx context.Context, db *gorm.DB, energy *domain.Energy) error {
	return db.WithContext(ctx).Create(energy).Error
}

func (r *repo) SumEnergyByType(ctx context.Context, db *gorm.DB) ([]domain.EnergyTotal, error) {
	var rows []domain.EnergyTotal
	err := db.WithContext(ctx).
		Model(&domain.Energy{}).
		Select("type AS type, COALESCE(SUM(monthly_production), 0) AS total_production, COALESCE(SUM(monthly_consumption), 0) AS total_consumption").
		Group("type").
		Order("type asc").
		Scan(&rows).Error
	return rows, err
}

func (r *repo) InsertFiltration(ctx context.Context, db *gorm.DB, filtration *domain.Filtration) error {
	return db.WithContext(ctx).Create(filtration).Error
}

func (r *repo) ListFiltrations(ctx context.Context, db *gorm.DB) ([]domain.FiltrationRow, error) {
	var rows []domain.FiltrationRow
	err := db.WithContext(ctx).Raw(
		`SELECT f.id AS id, f.filter_type AS filter_type, f.efficiency AS efficiency,
		        f.last_maintenance AS last_maintenance, f.pump_id AS pump_id, p.name AS pump_name
		 FROM filtrations f
		 JOIN pumps p ON p.id = f.pump_id
		 ORDER BY f.last_maintenance ASC, f.id ASC`,
	).Scan(&rows).Error
	return rows, err
}

// capacityErr surfaces the reservoir volume CHECK constraint as a validation error.
func capacityErr(err error) error {
	if db.IsCheckViolationErr(err) {
		return domain.ErrInvalidVolume
	}
	return err
}
