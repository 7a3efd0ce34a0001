package pdf

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceProducesPDF(t *testing.T) {
	provider := New()

	reader, err := provider.GenerateInvoice(context.Background(), InvoiceData{
		UtilityName:      "Waterline",
		InvoiceNumber:    "1234",
		IssueDate:        "2026-05-01",
		PaymentStatus:    "unpaid",
		BillToName:       "Jean Dupont",
		DistributionDate: "2026-05-01",
		Volume:           "12.00",
		UnitPrice:        "1.50 EUR",
		Total:            "18.00 EUR",
	})
	require.NoError(t, err)

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestGenerateInvoiceHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().GenerateInvoice(ctx, InvoiceData{})
	assert.ErrorIs(t, err, context.Canceled)
}
