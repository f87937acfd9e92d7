// Package notify delivers the platform's transactional emails. Callers pick
// whether a delivery failure aborts, compensates or is only logged.
package notify

import (
	"context"
	"errors"
	"time"
)

var ErrDelivery = errors.New("notify: delivery failed")

// Notifier sends one kind of email per method. Implementations must be safe
// for concurrent use.
type Notifier interface {
	SendOTP(ctx context.Context, m OTPMessage) error
	SendWelcome(ctx context.Context, m WelcomeMessage) error
	SendInvitation(ctx context.Context, m InvitationMessage) error
	SendCompanyApproval(ctx context.Context, m ApprovalMessage) error
}

type OTPMessage struct {
	To            string
	Name          string
	Code          string
	ExpiryMinutes int
}

type WelcomeMessage struct {
	To          string
	Name        string
	CompanyName string
}

type InvitationMessage struct {
	To          string
	Name        string
	CompanyName string
	InviterName string
	Role        string
	URL         string // accept link carrying the raw token
	Message     string // optional note from the inviter
	Code        string // OTP to be entered alongside the token
	ExpiresAt   time.Time
}

type ApprovalMessage struct {
	To           string
	Name         string
	CompanyName  string
	DashboardURL string
}

const (
	SubjectOTP      = "Your OTP for Yukti Platform"
	SubjectWelcome  = "Welcome to Yukti Platform"
	SubjectApproval = "Company Approved - Access Your Dashboard"
)

func SubjectInvitation(company string) string {
	return "Invitation to join " + company + " on Yukti Platform"
}
