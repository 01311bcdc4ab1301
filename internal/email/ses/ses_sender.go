package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject := fmt.Sprintf("Invoice %s from %s", msg.InvoiceNumber, msg.FromCompany)
	htmlBody := BuildInvoiceHTML(msg)
	textBody := BuildInvoiceText(msg)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// BuildInvoiceText renders the plain-text body of an invoice notice.
func BuildInvoiceText(msg port.InvoiceEmail) string {
	body := fmt.Sprintf("Hi %s,\n\n%s has issued invoice %s dated %s for %s, due on %s.\n",
		msg.ToName, msg.FromCompany, msg.InvoiceNumber, msg.InvoiceDate, msg.GrandTotal, msg.DueDate)
	if msg.DocumentURL != "" {
		body += fmt.Sprintf("\nDownload your invoice:\n%s\n", msg.DocumentURL)
	}
	return body + "\nThank you for your business.\n"
}

// BuildInvoiceHTML renders the HTML body of an invoice notice.
func BuildInvoiceHTML(msg port.InvoiceEmail) string {
	link := ""
	if msg.DocumentURL != "" {
		u := html.EscapeString(msg.DocumentURL)
		link = fmt.Sprintf(`
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>
  <p style="word-break: break-all; color: #666;">%s</p>`, u, u)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>%s has issued an invoice dated %s.</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0;">Amount due</td><td><strong>%s</strong></td></tr>
    <tr><td style="padding: 4px 12px 4px 0;">Due date</td><td>%s</td></tr>
  </table>%s
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Thank you for your business.</p>
</body>
</html>`,
		html.EscapeString(msg.InvoiceNumber),
		html.EscapeString(msg.ToName),
		html.EscapeString(msg.FromCompany),
		html.EscapeString(msg.InvoiceDate),
		html.EscapeString(msg.GrandTotal),
		html.EscapeString(msg.DueDate),
		link,
	)
}
