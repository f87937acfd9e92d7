package domain

import "time"

type CompanyStatus string

const (
	CompanyPending  CompanyStatus = "pending"
	CompanyApproved CompanyStatus = "approved"
	CompanyRejected CompanyStatus = "rejected"
	CompanyActive   CompanyStatus = "active"
	CompanyInactive CompanyStatus = "inactive"
)

func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyPending, CompanyApproved, CompanyRejected, CompanyActive, CompanyInactive:
		return true
	}
	return false
}

// Operational reports whether the company has cleared approval.
func (s CompanyStatus) Operational() bool {
	return s == CompanyApproved || s == CompanyActive
}

var CompanySizes = []string{"startup", "small", "medium", "large", "enterprise"}

type Company struct {
	ID                  string
	Name                string
	Alias               string
	BusinessEmail       string
	BackupEmail         string
	Address             *Address
	Timezone            string
	Status              CompanyStatus
	SubscriptionPlan    string
	OnboardingCompleted bool
	Settings            CompanySettings
	Metadata            CompanyMetadata
	ApprovedAt          *time.Time
	ApprovedBy          string
	RejectionReason     string
	LastActivityAt      *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zipcode string `json:"zipcode"`
}

type CompanyMetadata struct {
	Industry    string `json:"industry,omitempty"`
	Size        string `json:"size,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

type CompanySettings struct {
	AlertChannels           []AlertChannel          `json:"alertChannels"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	DashboardSettings       DashboardSettings       `json:"dashboardSettings"`
}

type AlertChannel struct {
	Type    string         `json:"type"` // email, slack, teams, webhook, sms
	Config  map[string]any `json:"config,omitempty"`
	Enabled bool           `json:"enabled"`
}

type NotificationPreferences struct {
	Incidents   bool `json:"incidents"`
	Maintenance bool `json:"maintenance"`
	Reports     bool `json:"reports"`
	Security    bool `json:"security"`
}

type DashboardSettings struct {
	Theme           string `json:"theme"`
	DefaultView     string `json:"defaultView"`
	AutoRefresh     bool   `json:"autoRefresh"`
	RefreshInterval int    `json:"refreshInterval"` // seconds
}

func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		AlertChannels: []AlertChannel{},
		NotificationPreferences: NotificationPreferences{
			Incidents: true, Maintenance: true, Reports: true, Security: true,
		},
		DashboardSettings: DashboardSettings{
			Theme: "light", DefaultView: "overview", AutoRefresh: true, RefreshInterval: 30,
		},
	}
}

type CompanyView struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Alias               string          `json:"alias"`
	BusinessEmail       string          `json:"businessEmail,omitempty"`
	BackupEmail         string          `json:"backupEmail,omitempty"`
	Address             *Address        `json:"businessAddress,omitempty"`
	Timezone            string          `json:"preferredTimezone"`
	Status              CompanyStatus   `json:"status"`
	SubscriptionPlan    string          `json:"subscriptionPlan"`
	OnboardingCompleted bool            `json:"onboardingCompleted"`
	Settings            CompanySettings `json:"settings"`
	Metadata            CompanyMetadata `json:"metadata"`
	ApprovedAt          *time.Time      `json:"approvedAt,omitempty"`
	ApprovedBy          string          `json:"approvedBy,omitempty"`
	RejectionReason     string          `json:"rejectionReason,omitempty"`
	DashboardURL        string          `json:"dashboardUrl,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// View projects c for clients; dashboardBase may be empty.
func (c *Company) View(dashboardBase string) CompanyView {
	v := CompanyView{
		ID:                  c.ID,
		Name:                c.Name,
		Alias:               c.Alias,
		BusinessEmail:       c.BusinessEmail,
		BackupEmail:         c.BackupEmail,
		Address:             c.Address,
		Timezone:            c.Timezone,
		Status:              c.Status,
		SubscriptionPlan:    c.SubscriptionPlan,
		OnboardingCompleted: c.OnboardingCompleted,
		Settings:            c.Settings,
		Metadata:            c.Metadata,
		ApprovedAt:          c.ApprovedAt,
		ApprovedBy:          c.ApprovedBy,
		RejectionReason:     c.RejectionReason,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
	if dashboardBase != "" {
		v.DashboardURL = DashboardURL(dashboardBase, c.Alias)
	}
	return v
}

// DashboardURL joins the dashboard base and a company alias.
func DashboardURL(base, alias string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + alias
}
