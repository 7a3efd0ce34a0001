package config

import (
	"errors"
	"log"
	"math"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Bounds on the public positive feedback listing. Reloads may tighten them
// but never relax them.
const (
	MaxPositiveFeedbackLimit  = 10
	MinPositiveFeedbackRating = 4.0
)

// DashboardConfig tunes the dashboard queries and the distribution tariff.
type DashboardConfig struct {
	PositiveFeedbackMinRating float64 `mapstructure:"positiveFeedbackMinRating"`
	PositiveFeedbackLimit     int     `mapstructure:"positiveFeedbackLimit"`
	RecentDistributions       int     `mapstructure:"recentDistributions"`
	RecentInvoices            int     `mapstructure:"recentInvoices"`
	DistributionWindowDays    int     `mapstructure:"distributionWindowDays"`
	TariffPerCubicMeter       float64 `mapstructure:"tariffPerCubicMeter"`
	Currency                  string  `mapstructure:"currency"`
	InvoiceNumberTemplate     string  `mapstructure:"invoiceNumberTemplate"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		PositiveFeedbackMinRating: 4,
		PositiveFeedbackLimit:     10,
		RecentDistributions:       10,
		RecentInvoices:            5,
		DistributionWindowDays:    365,
		TariffPerCubicMeter:       1.5,
		Currency:                  "EUR",
		InvoiceNumberTemplate:     "FAC-{YYYY}{MM}-{ID6}",
	}
}

type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

// NewStaticDashboardConfigHolder returns a holder that never reloads.
func NewStaticDashboardConfigHolder(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDashboardConfigHolder() (*DashboardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/waterline")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WATERLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.positiveFeedbackMinRating", defaults.PositiveFeedbackMinRating)
	v.SetDefault("dashboard.positiveFeedbackLimit", defaults.PositiveFeedbackLimit)
	v.SetDefault("dashboard.recentDistributions", defaults.RecentDistributions)
	v.SetDefault("dashboard.recentInvoices", defaults.RecentInvoices)
	v.SetDefault("dashboard.distributionWindowDays", defaults.DistributionWindowDays)
	v.SetDefault("dashboard.tariffPerCubicMeter", defaults.TariffPerCubicMeter)
	v.SetDefault("dashboard.currency", defaults.Currency)
	v.SetDefault("dashboard.invoiceNumberTemplate", defaults.InvoiceNumberTemplate)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileLoaded = false
	}

	cfg, err := decodeDashboardConfig(v)
	if err != nil {
		return nil, err
	}
	if err := ValidateDashboardConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticDashboardConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeDashboardConfig(v)
		if err != nil {
			log.Printf("[dashboard-config] reload failed: %v", err)
			return
		}
		if err := ValidateDashboardConfig(updated); err != nil {
			log.Printf("[dashboard-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[dashboard-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// decodeDashboardConfig goes through Unmarshal so nested defaults merge with a partial file.
func decodeDashboardConfig(v *viper.Viper) (DashboardConfig, error) {
	var wrapper struct {
		Dashboard DashboardConfig `mapstructure:"dashboard"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return DashboardConfig{}, err
	}
	return wrapper.Dashboard, nil
}

func (h *DashboardConfigHolder) Get() DashboardConfig {
	return h.current.Load().(DashboardConfig)
}

func ValidateDashboardConfig(cfg DashboardConfig) error {
	if cfg.PositiveFeedbackMinRating < MinPositiveFeedbackRating || cfg.PositiveFeedbackMinRating > 5 {
		return errors.New("dashboard.positiveFeedbackMinRating must be within [4,5]")
	}
	if cfg.PositiveFeedbackLimit <= 0 || cfg.PositiveFeedbackLimit > MaxPositiveFeedbackLimit {
		return errors.New("dashboard.positiveFeedbackLimit must be within [1,10]")
	}
	if cfg.RecentDistributions <= 0 || cfg.RecentInvoices <= 0 {
		return errors.New("dashboard history limits must be positive")
	}
	if cfg.DistributionWindowDays <= 0 {
		return errors.New("dashboard.distributionWindowDays must be positive")
	}
	if math.IsNaN(cfg.TariffPerCubicMeter) || math.IsInf(cfg.TariffPerCubicMeter, 0) || cfg.TariffPerCubicMeter < 0 {
		return errors.New("dashboard.tariffPerCubicMeter must be a non-negative number")
	}
	if strings.TrimSpace(cfg.InvoiceNumberTemplate) == "" {
		return errors.New("dashboard.invoiceNumberTemplate is required")
	}
	return nil
}
