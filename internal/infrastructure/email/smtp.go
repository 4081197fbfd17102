package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"talentika/internal/application/payment/usecases"
	"talentika/internal/shared/biztime"
	"talentika/internal/shared/config"
	"talentika/internal/shared/logger"
)

type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	FromAddress  string
	FromName     string
	OpsAddresses []string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var (
	textPolicy = bluemonday.StrictPolicy()
	idrPrinter = message.NewPrinter(language.Indonesian)
)

// SMTPAlertNotifier emails operators when a paid transaction could not be turned into a
// subscription.
type SMTPAlertNotifier struct {
	config SMTPConfig
	sender sender
	logger logger.Interface
}

func NewSMTPAlertNotifier(cfg SMTPConfig, log logger.Interface) *SMTPAlertNotifier {
	return &SMTPAlertNotifier{
		config: cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: log,
	}
}

// NewAlertNotifierFromConfig returns nil when notifications are disabled or have no
// recipients.
func NewAlertNotifierFromConfig(cfg *config.NotificationConfig, log logger.Interface) *SMTPAlertNotifier {
	if !cfg.Enabled || len(cfg.OpsAddresses) == 0 {
		return nil
	}
	return NewSMTPAlertNotifier(SMTPConfig{
		Host:         cfg.SMTPHost,
		Port:         cfg.SMTPPort,
		Username:     cfg.SMTPUser,
		Password:     cfg.SMTPPassword,
		FromAddress:  cfg.FromAddress,
		FromName:     cfg.FromName,
		OpsAddresses: cfg.OpsAddresses,
	}, log)
}

var _ usecases.ActivationAlertNotifier = (*SMTPAlertNotifier)(nil)

func (s *SMTPAlertNotifier) NotifyActivationFailure(ctx context.Context, alert usecases.ActivationFailureAlert) error {
	if len(s.config.OpsAddresses) == 0 {
		return errors.New("no operator addresses configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("[Talentika] Activation failed for transaction %s", alert.TransactionID)
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", s.config.OpsAddresses...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", activationFailurePlain(alert))
	m.AddAlternative("text/html", activationFailureHTML(alert))

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("activation failure alert sent",
		"transaction_id", alert.TransactionID,
		"recipients", len(s.config.OpsAddresses),
	)
	return nil
}

func activationFailurePlain(a usecases.ActivationFailureAlert) string {
	var b strings.Builder
	b.WriteString("A payment completed but the subscription was not activated.\n\n")
	fmt.Fprintf(&b, "Transaction: %s\n", a.TransactionID)
	fmt.Fprintf(&b, "User:        %s\n", a.UserID)
	fmt.Fprintf(&b, "Plan:        %s\n", a.PlanID)
	fmt.Fprintf(&b, "Amount:      %s %s\n", a.Currency, idrPrinter.Sprintf("%d", a.Amount))
	fmt.Fprintf(&b, "Paid at:     %s\n", biztime.FormatInBizTimezone(a.PaidAt, "2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Source:      %s\n", a.Source)
	fmt.Fprintf(&b, "Error:       %s\n\n", a.Error)
	b.WriteString("The retry job will keep trying. Use the admin retry endpoint to force an attempt.\n")
	return b.String()
}

func activationFailureHTML(a usecases.ActivationFailureAlert) string {
	row := func(label, value string) string {
		return fmt.Sprintf("<tr><th align=\"left\">%s</th><td>%s</td></tr>", label, textPolicy.Sanitize(value))
	}
	return "<html><body>" +
		"<h2>Subscription activation failed</h2>" +
		"<p>A payment completed but the subscription was not activated.</p>" +
		"<table>" +
		row("Transaction", a.TransactionID) +
		row("User", a.UserID) +
		row("Plan", a.PlanID) +
		row("Amount", a.Currency+" "+idrPrinter.Sprintf("%d", a.Amount)) +
		row("Paid at", biztime.FormatInBizTimezone(a.PaidAt, "2006-01-02 15:04:05 MST")) +
		row("Source", a.Source) +
		row("Error", a.Error) +
		"</table>" +
		"<p>The retry job will keep trying. Use the admin retry endpoint to force an attempt.</p>" +
		"</body></html>"
}
