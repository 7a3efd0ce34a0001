package domain

import "github.com/bwmarrin/snowflake"

type WaterLevel struct {
	ReservoirID     snowflake.ID `json:"id"`
	Name            string       `json:"nom"`
	Level           float64      `json:"niveau"`
	AvailableVolume float64      `json:"volume_disponible"`
	MaxVolume       float64      `json:"volume_max"`
	ValidCapacity   bool         `json:"capacite_valide"`
}

type EnergyTotal struct {
	Type             string  `json:"type_energie"`
	TotalProduction  float64 `json:"total_production"`
	TotalConsumption float64 `json:"total_consommation"`
}

type PumpStatus struct {
	ID        snowflake.ID `json:"id"`
	Name      string       `json:"nom"`
	State     string       `json:"etat"`
	FlowRate  float64      `json:"debit"`
	Reservoir string       `json:"reservoir"`
}

type FiltrationView struct {
	ID              snowflake.ID `json:"id"`
	FilterType      string       `json:"type_filtre"`
	Efficiency      float64      `json:"efficacite"`
	LastMaintenance string       `json:"date_derniere_maintenance"`
	PumpID          snowflake.ID `json:"pompe_id"`
	Pump            string       `json:"pompe"`
}
