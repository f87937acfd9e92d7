package notify

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/yukti/platform/pkg/slogx"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier renders HTML emails and sends each over a fresh SMTP session.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

var _ Notifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, tmpl string, data any) error {
	body, err := render(tmpl, data)
	if err != nil {
		return fmt.Errorf("render %s email: %w", tmpl, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		slogx.FromContext(ctx).Error("email delivery failed",
			slog.String("template", tmpl),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	slogx.FromContext(ctx).Debug("email sent", slog.String("template", tmpl))
	return nil
}

func (n *SMTPNotifier) SendOTP(ctx context.Context, m OTPMessage) error {
	return n.send(ctx, m.To, SubjectOTP, "otp", m)
}

func (n *SMTPNotifier) SendWelcome(ctx context.Context, m WelcomeMessage) error {
	return n.send(ctx, m.To, SubjectWelcome, "welcome", m)
}

func (n *SMTPNotifier) SendInvitation(ctx context.Context, m InvitationMessage) error {
	return n.send(ctx, m.To, SubjectInvitation(m.CompanyName), "invitation", m)
}

func (n *SMTPNotifier) SendCompanyApproval(ctx context.Context, m ApprovalMessage) error {
	return n.send(ctx, m.To, SubjectApproval, "approval", m)
}
