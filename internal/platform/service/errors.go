package service

import (
	"errors"
	"fmt"

	"github.com/yukti/platform/internal/platform/store"
)

// Kind classifies a service error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindAuthorization
	KindRateLimit
	KindNotFound
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindRateLimit:
		return "rate_limit"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	}
	return "internal"
}

// Error is a client-facing failure. Message is safe to return verbatim.
// Errors built with Errorf keep their sentinel, so errors.Is matches the
// sentinel even when the message carries dynamic detail.
type Error struct {
	Kind    Kind
	Message string
	base    *Error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.base != nil && e.base == t
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Errorf returns a variant of base with a formatted message.
func Errorf(base *Error, format string, args ...any) *Error {
	return &Error{Kind: base.Kind, Message: fmt.Sprintf(format, args...), base: base}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrInvalidCredentials  = newError(KindAuthentication, "Invalid credentials")
	ErrAccountInactive     = newError(KindAuthentication, "Account is inactive")
	ErrAccountLocked       = newError(KindAuthentication, "Account is temporarily locked")
	ErrInvalidRefreshToken = newError(KindAuthentication, "Invalid refresh token")
	ErrMissingRefreshToken = newError(KindAuthentication, "Refresh token not found")

	ErrTooManyOTPRequests = newError(KindRateLimit, "Too many OTP requests")
	ErrOTPResendTooSoon   = newError(KindRateLimit, "Please wait before requesting a new OTP")

	ErrNoValidOTP          = newError(KindValidation, "No valid OTP found")
	ErrOTPExpired          = newError(KindValidation, "OTP has expired")
	ErrMaxOTPAttempts      = newError(KindValidation, "Maximum OTP attempts exceeded")
	ErrInvalidOTP          = newError(KindValidation, "Invalid OTP")
	ErrInvalidOrExpiredOTP = newError(KindValidation, "Invalid or expired OTP")
	ErrInvalidEmail        = newError(KindValidation, "Please use a valid business email address")
	ErrInvalidCompanyEmail = newError(KindValidation, "Please use a valid business email address for company")
	ErrInvalidPhone        = newError(KindValidation, "Please provide a valid phone number")
	ErrInvalidAlias        = newError(KindValidation, "Invalid company alias format")
	ErrInvalidRole         = newError(KindValidation, "Invalid role")
	ErrInvalidPermission   = newError(KindValidation, "Invalid permission")
	ErrInvalidStatus       = newError(KindValidation, "Invalid status")
	ErrInvalidAction       = newError(KindValidation, "Invalid action")
	ErrInvalidRequest      = newError(KindValidation, "Invalid request")
	ErrInvalidInvitation   = newError(KindValidation, "Invalid or expired invitation token")
	ErrInvitationExpired   = newError(KindValidation, "Invitation has expired")
	ErrCompanyNotPending   = newError(KindValidation, "Company is not pending approval")

	ErrEmailTaken          = newError(KindConflict, "User with this email already exists")
	ErrEmailInUse          = newError(KindConflict, "Email already in use")
	ErrCompanyTaken        = newError(KindConflict, "Company name or alias already exists")
	ErrConcurrentUpdate    = newError(KindConflict, "Concurrent update detected, please retry")
	ErrAlreadyBootstrapped = newError(KindConflict, "Platform is already bootstrapped")

	ErrForbidden              = newError(KindAuthorization, "Insufficient permissions")
	ErrSelfRoleChange         = newError(KindAuthorization, "Cannot modify your own role")
	ErrSelfDeactivation       = newError(KindAuthorization, "Cannot deactivate your own account")
	ErrSelfRemoval            = newError(KindAuthorization, "Cannot remove your own account")
	ErrAdminRoleGrant         = newError(KindAuthorization, "Only platform admins can assign the admin role")
	ErrCompanyAccessDenied    = newError(KindAuthorization, "Access denied to this company")
	ErrDashboardAccessDenied  = newError(KindAuthorization, "Access denied to this company dashboard")
	ErrCompanyStatusForbidden = newError(KindAuthorization, "Only admins can change company status")
	ErrBootstrapUnauthorized  = newError(KindAuthorization, "Invalid bootstrap token")

	ErrUserNotFound           = newError(KindNotFound, "User not found")
	ErrCompanyNotFound        = newError(KindNotFound, "Company not found")
	ErrInvitationNotFound     = newError(KindNotFound, "Pending invitation not found")
	ErrTransferTargetNotFound = newError(KindNotFound, "Transfer target user not found")

	ErrDeliveryFailed = newError(KindDependency, "Failed to send OTP. Please try again.")
)

// mapWriteErr turns optimistic-lock failures into ErrConcurrentUpdate.
func mapWriteErr(err error) error {
	if errors.Is(err, store.ErrConflict) {
		return ErrConcurrentUpdate
	}
	return err
}
