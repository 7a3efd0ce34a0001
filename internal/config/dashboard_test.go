package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDashboardConfigIsValid(t *testing.T) {
	cfg := DefaultDashboardConfig()
	require.NoError(t, ValidateDashboardConfig(cfg))
	assert.Equal(t, 4.0, cfg.PositiveFeedbackMinRating)
	assert.Equal(t, 10, cfg.PositiveFeedbackLimit)
	assert.Equal(t, 10, cfg.RecentDistributions)
	assert.Equal(t, 5, cfg.RecentInvoices)
	assert.Equal(t, 365, cfg.DistributionWindowDays)
}

func TestValidateDashboardConfigRejectsOutOfRangeValues(t *testing.T) {
	cfg := DefaultDashboardConfig()
	cfg.PositiveFeedbackMinRating = 6
	assert.Error(t, ValidateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.PositiveFeedbackLimit = 0
	assert.Error(t, ValidateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.PositiveFeedbackLimit = 11
	assert.Error(t, ValidateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.PositiveFeedbackMinRating = 3.5
	assert.Error(t, ValidateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.TariffPerCubicMeter = -1
	assert.Error(t, ValidateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.TariffPerCubicMeter = math.Inf(1)
	assert.Error(t, ValidateDashboardConfig(cfg))

	cfg = DefaultDashboardConfig()
	cfg.PositiveFeedbackLimit = 3
	cfg.PositiveFeedbackMinRating = 4.5
	assert.NoError(t, ValidateDashboardConfig(cfg))
}

func TestNewDashboardConfigHolderReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("dashboard:\n  positiveFeedbackLimit: 3\n  tariffPerCubicMeter: 2.25\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard.yml"), content, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewDashboardConfigHolder()
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, 3, cfg.PositiveFeedbackLimit)
	assert.Equal(t, 2.25, cfg.TariffPerCubicMeter)
	assert.Equal(t, 5, cfg.RecentInvoices)
}

func TestBootstrapConfigEnabled(t *testing.T) {
	assert.False(t, BootstrapConfig{}.Enabled())
	assert.False(t, BootstrapConfig{AdminEmail: "root@example.com"}.Enabled())
	assert.True(t, BootstrapConfig{AdminEmail: "root@example.com", AdminPassword: "secret-pass"}.Enabled())
}
