package spreadsheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateWritesHeaderAndRows(t *testing.T) {
	provider := New()

	body, err := provider.Generate(context.Background(), Sheet{
		Name:    "Distribution",
		Title:   "Volumes distribués",
		Columns: []Column{{Label: "Mois", Width: 12}, {Label: "Volume (m³)", Width: 16}},
		Rows: [][]any{
			{"2026-01", 120.5},
			{"2026-02", 98.0},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(body)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Distribution"}, f.GetSheetList())

	title, err := f.GetCellValue("Distribution", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Volumes distribués", title)

	header, err := f.GetCellValue("Distribution", "B4")
	require.NoError(t, err)
	assert.Equal(t, "Volume (m³)", header)

	month, err := f.GetCellValue("Distribution", "A6")
	require.NoError(t, err)
	assert.Equal(t, "2026-02", month)

	volume, err := f.GetCellValue("Distribution", "B5")
	require.NoError(t, err)
	assert.Equal(t, "120.5", volume)
}

func TestGenerateRequiresColumns(t *testing.T) {
	_, err := New().Generate(context.Background(), Sheet{Name: "Empty"})
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Generate(ctx, Sheet{Columns: []Column{{Label: "A"}}})
	assert.ErrorIs(t, err, context.Canceled)
}
