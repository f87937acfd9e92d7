package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/pkg/slogx"
)

func TestRenderTemplates(t *testing.T) {
	body, err := render("otp", OTPMessage{Code: "042137", ExpiryMinutes: 10})
	require.NoError(t, err)
	require.Contains(t, body, "042137")
	require.Contains(t, body, "Hello there")
	require.Contains(t, body, "10 minutes")

	body, err = render("invitation", InvitationMessage{
		Name:        "Bob",
		CompanyName: "Acme",
		InviterName: "Alice",
		Role:        "user",
		URL:         "http://localhost:3000/accept-invitation?token=abc",
		Code:        "123456",
		ExpiresAt:   time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Contains(t, body, "Alice has invited you to join <strong>Acme</strong>")
	require.Contains(t, body, `href="http://localhost:3000/accept-invitation?token=abc"`)
	require.Contains(t, body, "123456")
	require.Contains(t, body, "8 Mar 2025")

	body, err = render("approval", ApprovalMessage{Name: "A", CompanyName: "<Acme>", DashboardURL: "http://x/acme"})
	require.NoError(t, err)
	require.Contains(t, body, "&lt;Acme&gt;")
}

func TestSubjects(t *testing.T) {
	require.Equal(t, "Invitation to join Acme on Yukti Platform", SubjectInvitation("Acme"))
}

func TestLogNotifierHidesSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := slogx.WithContext(context.Background(), logger)

	require.NoError(t, NewLogNotifier(false).SendOTP(ctx, OTPMessage{To: "a@biz.com", Code: "654321"}))
	require.Contains(t, buf.String(), `"to":"a@biz.com"`)
	require.NotContains(t, buf.String(), "654321")

	buf.Reset()
	require.NoError(t, NewLogNotifier(true).SendOTP(ctx, OTPMessage{To: "a@biz.com", Code: "654321"}))
	require.Contains(t, buf.String(), `"code":"654321"`)
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	require.NoError(t, r.SendOTP(ctx, OTPMessage{To: "a@biz.com", Code: "111111"}))
	require.NoError(t, r.SendOTP(ctx, OTPMessage{To: "a@biz.com", Code: "222222"}))
	require.NoError(t, r.SendInvitation(ctx, InvitationMessage{To: "b@biz.com", Code: "333333"}))
	require.Equal(t, "222222", r.LastOTP("a@biz.com"))
	require.Equal(t, "333333", r.LastOTP("b@biz.com"))
	require.Empty(t, r.LastOTP("c@biz.com"))

	boom := errors.New("smtp down")
	r.FailWith(KindInvitation, boom)
	require.ErrorIs(t, r.SendInvitation(ctx, InvitationMessage{To: "c@biz.com"}), boom)
	_, ok := r.LastInvitation("c@biz.com")
	require.False(t, ok)

	r.FailWith(KindInvitation, nil)
	require.NoError(t, r.SendInvitation(ctx, InvitationMessage{To: "c@biz.com"}))
	_, ok = r.LastInvitation("c@biz.com")
	require.True(t, ok)
}
