package platformsdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Users and companies as returned by the API
// ============================================================================

type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone,omitempty"`
	Role          string     `json:"role"`
	CompanyID     string     `json:"companyId"`
	Status        string     `json:"status"`
	Permissions   []string   `json:"permissions"`
	EmailVerified bool       `json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	InvitedBy     string     `json:"invitedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type Company struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Alias               string     `json:"alias"`
	BusinessEmail       string     `json:"businessEmail,omitempty"`
	Status              string     `json:"status"`
	SubscriptionPlan    string     `json:"subscriptionPlan"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	DashboardURL        string     `json:"dashboardUrl,omitempty"`
	RejectionReason     string     `json:"rejectionReason,omitempty"`
	ApprovedAt          *time.Time `json:"approvedAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ============================================================================
// Auth
// ============================================================================

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zipcode string `json:"zipcode"`
}

type SignupRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	CompanyName   string   `json:"companyName"`
	CompanyAlias  string   `json:"companyAlias,omitempty"`
	BusinessEmail string   `json:"businessEmail,omitempty"`
	BackupEmail   string   `json:"backupEmail,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Address       *Address `json:"businessAddress,omitempty"`
	Timezone      string   `json:"timezone,omitempty"`
	CompanySize   string   `json:"companySize,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	Website       string   `json:"website,omitempty"`
	Description   string   `json:"description,omitempty"`
}

type SignupResponse struct {
	Message          string `json:"message"`
	UserID           string `json:"userId"`
	CompanyID        string `json:"companyId"`
	RequiresApproval bool   `json:"requiresApproval"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type OTPSentResponse struct {
	Message string `json:"message"`
	OTPSent bool   `json:"otpSent"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// TokenResponse is returned by every endpoint that issues a token pair.
// User and Company are absent on refresh.
type TokenResponse struct {
	Message      string   `json:"message,omitempty"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int      `json:"expiresIn"`
	User         *User    `json:"user,omitempty"`
	Company      *Company `json:"company,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

type VerifyTokenResponse struct {
	Valid     bool       `json:"valid"`
	User      *User      `json:"user,omitempty"`
	Company   *Company   `json:"company,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail"`
	OTP      string `json:"otp"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type MeResponse struct {
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	CompanyID   string   `json:"companyId"`
	Permissions []string `json:"permissions"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Invitations
// ============================================================================

type InviteRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Message     string   `json:"message,omitempty"`
	Phone       string   `json:"phone,omitempty"`
}

type InviteResponse struct {
	Message          string    `json:"message"`
	UserID           string    `json:"userId"`
	Email            string    `json:"email"`
	InvitationExpiry time.Time `json:"invitationExpiry"`
}

type BulkInviteRequest struct {
	Invitations []InviteRequest `json:"invitations"`
}

type BulkInviteItem struct {
	Email   string          `json:"email"`
	Success bool            `json:"success"`
	Result  *InviteResponse `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type BulkInviteResponse struct {
	Message    string           `json:"message"`
	Results    []BulkInviteItem `json:"results"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
}

type ResendInvitationResponse struct {
	Message          string    `json:"message"`
	Email            string    `json:"email"`
	InvitationExpiry time.Time `json:"invitationExpiry"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
	OTP   string `json:"otp"`
}

// ============================================================================
// User management
// ============================================================================

type UserListResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type UpdateUserRequest struct {
	Name        *string  `json:"name,omitempty"`
	Role        *string  `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

type UpdateRoleRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type RemoveUserRequest struct {
	Reason           string `json:"reason,omitempty"`
	TransferToUserID string `json:"transferToUserId,omitempty"`
}

type RemoveUserResponse struct {
	Message           string `json:"message"`
	UserID            string `json:"userId"`
	TransferInitiated bool   `json:"transferInitiated"`
}

type BulkActionRequest struct {
	UserIDs []string `json:"userIds"`
	Action  string   `json:"action"`
	Reason  string   `json:"reason,omitempty"`
}

type BulkActionItem struct {
	UserID  string `json:"userId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BulkActionResponse struct {
	Message    string           `json:"message"`
	Results    []BulkActionItem `json:"results"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
}

// ============================================================================
// Companies
// ============================================================================

type CompanyListResponse struct {
	Companies  []Company  `json:"companies"`
	Pagination Pagination `json:"pagination"`
}

type CompanyStatsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type AliasAvailabilityResponse struct {
	Alias     string `json:"alias"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type UpdateCompanyRequest struct {
	Name                *string  `json:"name,omitempty"`
	BusinessEmail       *string  `json:"businessEmail,omitempty"`
	BackupEmail         *string  `json:"backupEmail,omitempty"`
	Address             *Address `json:"businessAddress,omitempty"`
	Timezone            *string  `json:"preferredTimezone,omitempty"`
	OnboardingCompleted *bool    `json:"onboardingCompleted,omitempty"`
	Status              *string  `json:"status,omitempty"`
}

type CompanyDecisionRequest struct {
	CompanyID string `json:"companyId"`
	Reason    string `json:"reason,omitempty"`
}

type CompanyResponse struct {
	Message string  `json:"message"`
	Company Company `json:"company"`
}

type DashboardURLResponse struct {
	DashboardURL string `json:"dashboardUrl"`
}

// ============================================================================
// Dashboard
// ============================================================================

type DashboardResponse struct {
	Company struct {
		ID                  string `json:"id"`
		Name                string `json:"name"`
		Alias               string `json:"alias"`
		Status              string `json:"status"`
		DashboardURL        string `json:"dashboardUrl"`
		OnboardingCompleted bool   `json:"onboardingCompleted"`
	} `json:"company"`
	User struct {
		ID          string   `json:"id"`
		Email       string   `json:"email"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	} `json:"user"`
	Features     []string `json:"features"`
	QuickActions []struct {
		Label  string `json:"label"`
		Action string `json:"action"`
	} `json:"quickActions"`
	Notifications []struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"notifications"`
}

type DashboardStatsResponse struct {
	Company struct {
		Status           string     `json:"status"`
		CreatedAt        time.Time  `json:"createdAt"`
		LastActivityAt   *time.Time `json:"lastActivityAt,omitempty"`
		SubscriptionPlan string     `json:"subscriptionPlan"`
	} `json:"company"`
	Users struct {
		Total   int `json:"total"`
		Active  int `json:"active"`
		Pending int `json:"pending"`
	} `json:"users"`
	Projects struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Completed int `json:"completed"`
	} `json:"projects"`
	Incidents struct {
		Open     int `json:"open"`
		Resolved int `json:"resolved"`
		Total    int `json:"total"`
	} `json:"incidents"`
}

type RecentActivityResponse struct {
	Activities []struct {
		Type        string    `json:"type"`
		Description string    `json:"description"`
		Timestamp   time.Time `json:"timestamp"`
	} `json:"activities"`
}

// ============================================================================
// Bootstrap
// ============================================================================

type BootstrapRequest struct {
	CompanyName  string `json:"companyName"`
	CompanyAlias string `json:"companyAlias,omitempty"`
	AdminName    string `json:"adminName"`
	AdminEmail   string `json:"adminEmail"`
}

type BootstrapResponse struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
}
