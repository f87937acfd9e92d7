package notify

import (
	"context"
	"sync"
)

// Recorder keeps every message in memory. Tests use it to read delivered
// codes and to simulate delivery failures.
type Recorder struct {
	mu sync.Mutex

	OTPs        []OTPMessage
	Welcomes    []WelcomeMessage
	Invitations []InvitationMessage
	Approvals   []ApprovalMessage

	failures map[string]error
}

var _ Notifier = (*Recorder)(nil)

const (
	KindOTP        = "otp"
	KindWelcome    = "welcome"
	KindInvitation = "invitation"
	KindApproval   = "approval"
)

func NewRecorder() *Recorder {
	return &Recorder{failures: make(map[string]error)}
}

// FailWith makes every following send of kind return err; a nil err clears it.
func (r *Recorder) FailWith(kind string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failures, kind)
		return
	}
	r.failures[kind] = err
}

func (r *Recorder) failure(kind string) error {
	if err, ok := r.failures[kind]; ok {
		return err
	}
	return nil
}

func (r *Recorder) SendOTP(_ context.Context, m OTPMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(KindOTP); err != nil {
		return err
	}
	r.OTPs = append(r.OTPs, m)
	return nil
}

func (r *Recorder) SendWelcome(_ context.Context, m WelcomeMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(KindWelcome); err != nil {
		return err
	}
	r.Welcomes = append(r.Welcomes, m)
	return nil
}

func (r *Recorder) SendInvitation(_ context.Context, m InvitationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(KindInvitation); err != nil {
		return err
	}
	r.Invitations = append(r.Invitations, m)
	return nil
}

func (r *Recorder) SendCompanyApproval(_ context.Context, m ApprovalMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(KindApproval); err != nil {
		return err
	}
	r.Approvals = append(r.Approvals, m)
	return nil
}

// LastOTP returns the most recent code sent to email, or "".
func (r *Recorder) LastOTP(email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.OTPs) - 1; i >= 0; i-- {
		if r.OTPs[i].To == email {
			return r.OTPs[i].Code
		}
	}
	for i := len(r.Invitations) - 1; i >= 0; i-- {
		if r.Invitations[i].To == email {
			return r.Invitations[i].Code
		}
	}
	return ""
}

// LastInvitation returns the most recent invitation sent to email.
func (r *Recorder) LastInvitation(email string) (InvitationMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Invitations) - 1; i >= 0; i-- {
		if r.Invitations[i].To == email {
			return r.Invitations[i], true
		}
	}
	return InvitationMessage{}, false
}
