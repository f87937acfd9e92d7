package notify

import (
	"context"
	"log/slog"

	"github.com/yukti/platform/pkg/slogx"
)

// LogNotifier writes emails to the log instead of sending them. Codes and
// links are only included when exposeSecrets is set, which the app does in
// development so local and end-to-end runs can complete a login.
type LogNotifier struct {
	exposeSecrets bool
}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier(exposeSecrets bool) *LogNotifier {
	return &LogNotifier{exposeSecrets: exposeSecrets}
}

func (n *LogNotifier) log(ctx context.Context, kind, to string, attrs ...slog.Attr) {
	args := []any{slog.String("kind", kind), slog.String("to", to)}
	for _, a := range attrs {
		args = append(args, a)
	}
	slogx.FromContext(ctx).Info("email", args...)
}

func (n *LogNotifier) SendOTP(ctx context.Context, m OTPMessage) error {
	var attrs []slog.Attr
	if n.exposeSecrets {
		attrs = append(attrs, slog.String("code", m.Code))
	}
	n.log(ctx, "otp", m.To, attrs...)
	return nil
}

func (n *LogNotifier) SendWelcome(ctx context.Context, m WelcomeMessage) error {
	n.log(ctx, "welcome", m.To, slog.String("company", m.CompanyName))
	return nil
}

func (n *LogNotifier) SendInvitation(ctx context.Context, m InvitationMessage) error {
	attrs := []slog.Attr{slog.String("company", m.CompanyName), slog.String("role", m.Role)}
	if n.exposeSecrets {
		attrs = append(attrs, slog.String("url", m.URL), slog.String("code", m.Code))
	}
	n.log(ctx, "invitation", m.To, attrs...)
	return nil
}

func (n *LogNotifier) SendCompanyApproval(ctx context.Context, m ApprovalMessage) error {
	n.log(ctx, "approval", m.To, slog.String("dashboard_url", m.DashboardURL))
	return nil
}
