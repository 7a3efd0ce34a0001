package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
)

type createWaterSourceRequest struct {
	Type           string  `json:"type_source"`
	Name           string  `json:"nom"`
	Address        string  `json:"adresse"`
	Contact        string  `json:"contact"`
	Quality        string  `json:"qualite_eau"`
	SuppliedVolume float64 `json:"volume_fournit"`
}

type createReservoirRequest struct {
	Name            string  `json:"nom"`
	MaxVolume       float64 `json:"volume_max"`
	AvailableVolume float64 `json:"volume_disponible"`
	WaterSourceID   string  `json:"source_id"`
}

type updateReservoirRequest struct {
	MaxVolume       *float64 `json:"volume_max"`
	AvailableVolume *float64 `json:"volume_disponible"`
}

type createPumpRequest struct {
	Name        string  `json:"nom"`
	State       string  `json:"etat"`
	FlowRate    float64 `json:"debit"`
	ReservoirID string  `json:"reservoir_id"`
}

type setPumpStateRequest struct {
	State string `json:"etat"`
}

type recordEnergyRequest struct {
	Type               string  `json:"type_energie"`
	MonthlyProduction  float64 `json:"production_mensuelle"`
	MonthlyConsumption float64 `json:"consommation_mensuelle"`
	PumpID             string  `json:"pompe_id"`
}

type recordFiltrationRequest struct {
	FilterType      string  `json:"type_filtre"`
	Efficiency      float64 `json:"efficacite"`
	LastMaintenance string  `json:"date_derniere_maintenance"`
	PumpID          string  `json:"pompe_id"`
}

func (s *Server) CreateWaterSource(c *gin.Context, p identitydomain.Principal) {
	var req createWaterSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	source, err := s.facilitySvc.CreateWaterSource(c.Request.Context(), facilitydomain.CreateWaterSourceRequest{
		Type:           req.Type,
		Name:           req.Name,
		Address:        req.Address,
		Contact:        req.Contact,
		Quality:        req.Quality,
		SuppliedVolume: req.SuppliedVolume,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, p, "water_source.create", "water_source", source.ID.String(), nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": source})
}

func (s *Server) CreateReservoir(c *gin.Context, p identitydomain.Principal) {
	var req createReservoirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	sourceID, err := parseOptionalSnowflakeID(req.WaterSourceID)
	if err != nil {
		AbortWithError(c, newValidationError("source_id", "invalid_id", "source_id is invalid"))
		return
	}

	reservoir, err := s.facilitySvc.CreateReservoir(c.Request.Context(), facilitydomain.CreateReservoirRequest{
		Name:            req.Name,
		MaxVolume:       req.MaxVolume,
		AvailableVolume: req.AvailableVolume,
		WaterSourceID:   sourceID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, p, "reservoir.create", "reservoir", reservoir.ID.String(), nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": reservoir})
}

func (s *Server) UpdateReservoir(c *gin.Context, p identitydomain.Principal) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	var req updateReservoirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reservoir, err := s.facilitySvc.UpdateReservoir(c.Request.Context(), id, facilitydomain.UpdateReservoirRequest{
		MaxVolume:       req.MaxVolume,
		AvailableVolume: req.AvailableVolume,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, p, "reservoir.update", "reservoir", reservoir.ID.String(), map[string]any{
		"volume_max":        reservoir.MaxVolume,
		"volume_disponible": reservoir.AvailableVolume,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reservoir})
}

func (s *Server) CreatePump(c *gin.Context, p identitydomain.Principal) {
	var req createPumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	reservoirID, err := parseRequiredSnowflakeID("reservoir_id", req.ReservoirID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pump, err := s.facilitySvc.CreatePump(c.Request.Context(), facilitydomain.CreatePumpRequest{
		Name:        req.Name,
		State:       req.State,
		FlowRate:    req.FlowRate,
		ReservoirID: reservoirID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, p, "pump.create", "pump", pump.ID.String(), nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": pump})
}

func (s *Server) SetPumpState(c *gin.Context, p identitydomain.Principal) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	var req setPumpStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pump, err := s.facilitySvc.SetPumpState(c.Request.Context(), id, req.State)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordPumpState(c.Request.Context(), pump.State)
	s.audit(c, p, "pump.set_state", "pump", pump.ID.String(), map[string]any{"etat": pump.State})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pump})
}

func (s *Server) RecordEnergy(c *gin.Context, p identitydomain.Principal) {
	var req recordEnergyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	pumpID, err := parseRequiredSnowflakeID("pompe_id", req.PumpID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	energy, err := s.facilitySvc.RecordEnergy(c.Request.Context(), facilitydomain.RecordEnergyRequest{
		Type:               req.Type,
		MonthlyProduction:  req.MonthlyProduction,
		MonthlyConsumption: req.MonthlyConsumption,
		PumpID:             pumpID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, p, "energy.record", "energy", energy.ID.String(), nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": energy})
}

func (s *Server) ListFiltrations(c *gin.Context, _ identitydomain.Principal) {
	items, err := s.facilitySvc.Filtrations(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if items == nil {
		items = []facilitydomain.FiltrationView{}
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) RecordFiltration(c *gin.Context, p identitydomain.Principal) {
	var req recordFiltrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	pumpID, err := parseRequiredSnowflakeID("pompe_id", req.PumpID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	maintenance, err := parseOptionalDate(req.LastMaintenance)
	if err != nil || maintenance == nil {
		AbortWithError(c, facilitydomain.ErrInvalidMaintenanceDay)
		return
	}

	filtration, err := s.facilitySvc.RecordFiltration(c.Request.Context(), facilitydomain.RecordFiltrationRequest{
		FilterType:      req.FilterType,
		Efficiency:      req.Efficiency,
		LastMaintenance: *maintenance,
		PumpID:          pumpID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, p, "filtration.record", "filtration", filtration.ID.String(), nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": filtration})
}
