package service

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/facility/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxNameLength  = 100
	maxShortLength = 50
	dateLayout     = "2006-01-02"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("facility.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) CreateWaterSource(ctx context.Context, req domain.CreateWaterSourceRequest) (*domain.WaterSource, error) {
	name, err := requireText(req.Name, maxNameLength, domain.ErrInvalidName)
	if err != nil {
		return nil, err
	}
	sourceType, err := requireText(req.Type, maxShortLength, domain.ErrInvalidType)
	if err != nil {
		return nil, err
	}
	quality, err := requireText(req.Quality, maxShortLength, domain.ErrInvalidQuality)
	if err != nil {
		return nil, err
	}
	if !isNonNegative(req.SuppliedVolume) {
		return nil, domain.ErrInvalidVolume
	}
	contact := strings.TrimSpace(req.Contact)
	if utf8.RuneCountInString(contact) > maxShortLength {
		return nil, domain.ErrInvalidContact
	}

	source := &domain.WaterSource{
		ID:             s.genID.Generate(),
		Type:           sourceType,
		Name:           name,
		Address:        strings.TrimSpace(req.Address),
		Contact:        contact,
		Quality:        quality,
		SuppliedVolume: req.SuppliedVolume,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.InsertWaterSource(ctx, s.db, source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *Service) TotalSuppliedVolume(ctx context.Context) (float64, error) {
	return s.repo.SumSuppliedVolume(ctx, s.db)
}

func (s *Service) CreateReservoir(ctx context.Context, req domain.CreateReservoirRequest) (*domain.Reservoir, error) {
	name, err := requireText(req.Name, maxNameLength, domain.ErrInvalidName)
	if err != nil {
		return nil, err
	}
	if err := validateCapacity(req.MaxVolume, req.AvailableVolume); err != nil {
		return nil, err
	}
	if req.WaterSourceID != nil {
		source, err := s.repo.FindWaterSource(ctx, s.db, *req.WaterSourceID)
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, domain.ErrWaterSourceNotFound
		}
	}

	now := s.clock.Now()
	reservoir := &domain.Reservoir{
		ID:              s.genID.Generate(),
		Name:            name,
		MaxVolume:       req.MaxVolume,
		AvailableVolume: req.AvailableVolume,
		WaterSourceID:   req.WaterSourceID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.InsertReservoir(ctx, s.db, reservoir); err != nil {
		return nil, err
	}
	return reservoir, nil
}

func (s *Service) UpdateReservoir(ctx context.Context, id snowflake.ID, req domain.UpdateReservoirRequest) (*domain.Reservoir, error) {
	var updated *domain.Reservoir
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservoir, err := s.repo.FindReservoir(ctx, tx, id)
		if err != nil {
			return err
		}
		if reservoir == nil {
			return domain.ErrReservoirNotFound
		}

		maxVolume := reservoir.MaxVolume
		if req.MaxVolume != nil {
			maxVolume = *req.MaxVolume
		}
		available := reservoir.AvailableVolume
		if req.AvailableVolume != nil {
			available = *req.AvailableVolume
		}
		if err := validateCapacity(maxVolume, available); err != nil {
			return err
		}

		if err := s.repo.UpdateReservoirVolumes(ctx, tx, id, maxVolume, available); err != nil {
			return err
		}
		reservoir.MaxVolume = maxVolume
		reservoir.AvailableVolume = available
		updated = reservoir
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) CountReservoirs(ctx context.Context) (int64, error) {
	return s.repo.CountReservoirs(ctx, s.db)
}

func (s *Service) WaterLevels(ctx context.Context) ([]domain.WaterLevel, error) {
	reservoirs, err := s.repo.ListReservoirs(ctx, s.db)
	if err != nil {
		return nil, err
	}

	levels := make([]domain.WaterLevel, 0, len(reservoirs))
	for _, reservoir := range reservoirs {
		level, valid := domain.FillLevel(reservoir.AvailableVolume, reservoir.MaxVolume)
		if !valid {
			s.log.Warn("reservoir has no usable capacity", zap.String("reservoir_id", reservoir.ID.String()))
		}
		levels = append(levels, domain.WaterLevel{
			ReservoirID:     reservoir.ID,
			Name:            reservoir.Name,
			Level:           level,
			AvailableVolume: reservoir.AvailableVolume,
			MaxVolume:       reservoir.MaxVolume,
			ValidCapacity:   valid,
		})
	}
	return levels, nil
}

func (s *Service) CreatePump(ctx context.Context, req domain.CreatePumpRequest) (*domain.Pump, error) {
	name, err := requireText(req.Name, maxNameLength, domain.ErrInvalidName)
	if err != nil {
		return nil, err
	}
	state := domain.PumpStateOff
	if strings.TrimSpace(req.State) != "" {
		state, err = normalizeState(req.State)
		if err != nil {
			return nil, err
		}
	}
	if !isNonNegative(req.FlowRate) {
		return nil, domain.ErrInvalidFlowRate
	}

	reservoir, err := s.repo.FindReservoir(ctx, s.db, req.ReservoirID)
	if err != nil {
		return nil, err
	}
	if reservoir == nil {
		return nil, domain.ErrReservoirNotFound
	}

	now := s.clock.Now()
	pump := &domain.Pump{
		ID:          s.genID.Generate(),
		Name:        name,
		State:       state,
		FlowRate:    req.FlowRate,
		ReservoirID: reservoir.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.InsertPump(ctx, s.db, pump); err != nil {
		return nil, err
	}
	return pump, nil
}

func (s *Service) GetPump(ctx context.Context, id snowflake.ID) (*domain.Pump, error) {
	pump, err := s.repo.FindPump(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if pump == nil {
		return nil, domain.ErrPumpNotFound
	}
	return pump, nil
}

func (s *Service) SetPumpState(ctx context.Context, id snowflake.ID, state string) (*domain.Pump, error) {
	normalized, err := normalizeState(state)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePumpState(ctx, s.db, id, normalized); err != nil {
		return nil, err
	}
	s.log.Info("pump state changed", zap.String("pump_id", id.String()), zap.String("state", normalized))
	return s.GetPump(ctx, id)
}

func (s *Service) CountPumpsOn(ctx context.Context) (int64, error) {
	return s.repo.CountPumpsByState(ctx, s.db, domain.PumpStateOn)
}

func (s *Service) PumpStatus(ctx context.Context) ([]domain.PumpStatus, error) {
	rows, err := s.repo.ListPumpStatus(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.PumpStatus{}
	}
	return rows, nil
}

func (s *Service) RecordEnergy(ctx context.Context, req domain.RecordEnergyRequest) (*domain.Energy, error) {
	energyType, err := requireText(req.Type, maxShortLength, domain.ErrInvalidType)
	if err != nil {
		return nil, err
	}
	if !isNonNegative(req.MonthlyProduction) || !isNonNegative(req.MonthlyConsumption) {
		return nil, domain.ErrInvalidEnergy
	}
	if _, err := s.GetPump(ctx, req.PumpID); err != nil {
		return nil, err
	}

	energy := &domain.Energy{
		ID:                 s.genID.Generate(),
		Type:               energyType,
		MonthlyProduction:  req.MonthlyProduction,
		MonthlyConsumption: req.MonthlyConsumption,
		PumpID:             req.PumpID,
		CreatedAt:          s.clock.Now(),
	}
	if err := s.repo.InsertEnergy(ctx, s.db, energy); err != nil {
		return nil, err
	}
	return energy, nil
}

func (s *Service) EnergyProduction(ctx context.Context) ([]domain.EnergyTotal, error) {
	rows, err := s.repo.SumEnergyByType(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.EnergyTotal{}
	}
	return rows, nil
}

func (s *Service) RecordFiltration(ctx context.Context, req domain.RecordFiltrationRequest) (*domain.Filtration, error) {
	filterType, err := requireText(req.FilterType, maxNameLength, domain.ErrInvalidType)
	if err != nil {
		return nil, err
	}
	if !isNonNegative(req.Efficiency) || req.Efficiency > 100 {
		return nil, domain.ErrInvalidEfficiency
	}
	if req.LastMaintenance.IsZero() || req.LastMaintenance.After(s.clock.Now()) {
		return nil, domain.ErrInvalidMaintenanceDay
	}
	if _, err := s.GetPump(ctx, req.PumpID); err != nil {
		return nil, err
	}

	filtration := &domain.Filtration{
		ID:              s.genID.Generate(),
		FilterType:      filterType,
		Efficiency:      req.Efficiency,
		LastMaintenance: clock.StartOfDay(req.LastMaintenance),
		PumpID:          req.PumpID,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.repo.InsertFiltration(ctx, s.db, filtration); err != nil {
		return nil, err
	}
	return filtration, nil
}

func (s *Service) Filtrations(ctx context.Context) ([]domain.FiltrationView, error) {
	rows, err := s.repo.ListFiltrations(ctx, s.db)
	if err != nil {
		return nil, err
	}
	views := make([]domain.FiltrationView, 0, len(rows))
	for _, row := range rows {
		views = append(views, domain.FiltrationView{
			ID:              row.ID,
			FilterType:      row.FilterType,
			Efficiency:      row.Efficiency,
			LastMaintenance: row.LastMaintenance.UTC().Format(dateLayout),
			PumpID:          row.PumpID,
			Pump:            row.PumpName,
		})
	}
	return views, nil
}

func validateCapacity(maxVolume, available float64) error {
	if !isNonNegative(maxVolume) || maxVolume == 0 {
		return domain.ErrInvalidCapacity
	}
	if !isNonNegative(available) || available > maxVolume {
		return domain.ErrInvalidVolume
	}
	return nil
}

func normalizeState(state string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case domain.PumpStateOn:
		return domain.PumpStateOn, nil
	case domain.PumpStateOff:
		return domain.PumpStateOff, nil
	default:
		return "", domain.ErrInvalidState
	}
}

func requireText(value string, maxLen int, errInvalid error) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxLen {
		return "", errInvalid
	}
	return trimmed, nil
}

// maxQuantity caps stored volumes, flow rates and energy figures so that
// sums and tariff products stay finite.
const maxQuantity = 1e12

func isNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= maxQuantity
}
