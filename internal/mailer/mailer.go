// Package mailer delivers payment receipts by email through the Gmail
// API. Mail is optional: without credentials the service degrades to a
// no-op sender and payment registration proceeds unaffected.
package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/condomaster/api/internal/config"
	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/pdf"
)

// Sender delivers a payment receipt to one recipient.
type Sender interface {
	SendReceipt(ctx context.Context, to string, payment *models.Payment, house *models.House) error
}

// New builds the sender matching the configuration: a Gmail-backed one
// when OAuth credentials are present, a no-op otherwise.
func New(ctx context.Context, cfg config.MailConfig, log *logger.Logger) (Sender, error) {
	if !cfg.Enabled() {
		log.Info("Mail disabled, receipts will not be emailed", nil)
		return &noopSender{log: log}, nil
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	// The refresh token was minted once out-of-band; the token source
	// keeps exchanging it for short-lived access tokens.
	source := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &gmailSender{svc: svc, from: cfg.Sender, log: log}, nil
}

type noopSender struct {
	log *logger.Logger
}

func (s *noopSender) SendReceipt(_ context.Context, to string, payment *models.Payment, _ *models.House) error {
	s.log.Debug("Skipping receipt email, mail disabled", map[string]interface{}{
		"to":      to,
		"voucher": payment.VoucherID,
	})
	return nil
}

type gmailSender struct {
	svc  *gmail.Service
	from string
	log  *logger.Logger
}

func (s *gmailSender) SendReceipt(ctx context.Context, to string, payment *models.Payment, house *models.House) error {
	raw := receiptMessage(s.from, to, payment, house)

	_, err := s.svc.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send receipt to %s: %w", to, err)
	}

	s.log.Info("Receipt emailed", map[string]interface{}{
		"to":      to,
		"voucher": payment.VoucherID,
	})

	return nil
}

// receiptMessage builds the RFC 822 receipt message.
func receiptMessage(from, to string, payment *models.Payment, house *models.House) string {
	var body strings.Builder
	fmt.Fprintf(&body, "Comprobante de pago N° %s\r\n\r\n", payment.VoucherID)
	fmt.Fprintf(&body, "Casa %s - %s\r\n", house.Number, house.OwnerName)
	fmt.Fprintf(&body, "Período: %s %d\r\n", pdf.MonthName(payment.Month), payment.Year)
	fmt.Fprintf(&body, "Fecha de pago: %s\r\n\r\n", payment.Date)

	for _, line := range payment.Breakdown {
		fmt.Fprintf(&body, "  %-40s %s\r\n", line.Name, pdf.CLP(line.Amount))
	}
	fmt.Fprintf(&body, "\r\n  %-40s %s\r\n", "TOTAL", pdf.CLP(payment.Amount))

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: Comprobante de pago %s\r\n", payment.VoucherID)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body.String())

	return msg.String()
}
