package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts domain events. A nil *Metrics records nothing.
type Metrics struct {
	OTPIssued        *prometheus.CounterVec // flow
	OTPVerifications *prometheus.CounterVec // result
	Invitations      *prometheus.CounterVec // result
	CompanyDecisions *prometheus.CounterVec // decision
	TokenRefreshes   *prometheus.CounterVec // result
}

func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		OTPIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_issued_total",
			Help:      "One-time codes issued, by flow.",
		}, []string{"flow"}),
		OTPVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "One-time code verification outcomes.",
		}, []string{"result"}),
		Invitations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_total",
			Help:      "Invitation outcomes.",
		}, []string{"result"}),
		CompanyDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "company_decisions_total",
			Help:      "Company approvals and rejections.",
		}, []string{"decision"}),
		TokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "Refresh token rotation outcomes.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.OTPIssued, m.OTPVerifications, m.Invitations, m.CompanyDecisions, m.TokenRefreshes)
	return m
}

func (m *Metrics) otpIssued(flow string) {
	if m != nil {
		m.OTPIssued.WithLabelValues(flow).Inc()
	}
}

func (m *Metrics) otpVerification(result string) {
	if m != nil {
		m.OTPVerifications.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) invitation(result string) {
	if m != nil {
		m.Invitations.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) companyDecision(decision string) {
	if m != nil {
		m.CompanyDecisions.WithLabelValues(decision).Inc()
	}
}

func (m *Metrics) tokenRefresh(result string) {
	if m != nil {
		m.TokenRefreshes.WithLabelValues(result).Inc()
	}
}
