package ses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstdesk/internal/email/ses"
	"gstdesk/internal/port"
)

func sampleEmail() port.InvoiceEmail {
	return port.InvoiceEmail{
		ToEmail:       "accounts@globex.in",
		ToName:        "Globex <Accounts>",
		FromCompany:   "Acme & Sons",
		InvoiceNumber: "INV-001",
		InvoiceDate:   "15 January 2025",
		DueDate:       "14 February 2025",
		GrandTotal:    "₹1,112.00",
	}
}

func TestBuildInvoiceText(t *testing.T) {
	body := ses.BuildInvoiceText(sampleEmail())
	assert.Contains(t, body, "Acme & Sons has issued invoice INV-001 dated 15 January 2025 for ₹1,112.00, due on 14 February 2025.")
	assert.NotContains(t, body, "Download")

	msg := sampleEmail()
	msg.DocumentURL = "https://signed.example/x.pdf"
	assert.Contains(t, ses.BuildInvoiceText(msg), "https://signed.example/x.pdf")
}

func TestBuildInvoiceHTML(t *testing.T) {
	msg := sampleEmail()
	msg.DocumentURL = "https://signed.example/x.pdf?a=1&b=2"
	body := ses.BuildInvoiceHTML(msg)

	assert.Contains(t, body, "Globex &lt;Accounts&gt;")
	assert.Contains(t, body, "Acme &amp; Sons")
	assert.Contains(t, body, "₹1,112.00")
	assert.Contains(t, body, "https://signed.example/x.pdf?a=1&amp;b=2")
	assert.NotContains(t, body, "<Accounts>")
}
