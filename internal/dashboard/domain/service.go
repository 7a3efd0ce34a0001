package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
)

// HomeStats is the public landing page summary. Every aggregate is 0 on an empty store.
type HomeStats struct {
	TotalClients        int64   `json:"total_clients"`
	TotalVolumeTreated  float64 `json:"total_volume_traite"`
	ActiveInstallations int64   `json:"installations_actives"`
	AverageSatisfaction float64 `json:"satisfaction_moyenne"`
}

type AdminDashboard struct {
	TotalClients     int64   `json:"total_clients"`
	ActiveClients    int64   `json:"clients_actifs"`
	TotalReservoirs  int64   `json:"total_reservoirs"`
	ActivePumps      int64   `json:"pompes_actives"`
	UnresolvedAlerts int64   `json:"alertes_non_resolues"`
	MonthlyRevenue   float64 `json:"revenus_mensuels"`
}

type ClientInfo struct {
	Name           string  `json:"nom"`
	Email          string  `json:"email"`
	Balance        float64 `json:"solde"`
	ConsumedVolume float64 `json:"volume_consomme"`
}

type ClientDashboard struct {
	ClientInfo    ClientInfo                   `json:"client_info"`
	Distributions []distributiondomain.Summary `json:"commandes"`
	Invoices      []invoicedomain.Summary      `json:"factures"`
}

type Service interface {
	HomeStats(ctx context.Context) (HomeStats, error)
	AdminDashboard(ctx context.Context) (AdminDashboard, error)
	ClientDashboard(ctx context.Context, clientID snowflake.ID) (ClientDashboard, error)
}
