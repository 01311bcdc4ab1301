package noop_test

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/email/noop"
	"gstdesk/internal/port"
)

func TestNoopSender_LogsInvoiceEmail(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	sender := noop.NewNoopSender(log)

	err := sender.SendInvoiceEmail(context.Background(), port.InvoiceEmail{
		ToEmail:       "accounts@globex.in",
		InvoiceNumber: "INV-001",
		GrandTotal:    "₹1,112.00",
	})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "[NOOP EMAIL] invoice email", entry.Message)
	assert.Equal(t, "accounts@globex.in", entry.Data["to"])
	assert.Equal(t, "INV-001", entry.Data["invoice_number"])
}
