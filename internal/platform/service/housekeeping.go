package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yukti/platform/internal/platform/store"
)

// HousekeepingService periodically purges expired revocation entries and
// clears OTP slots that have long since expired.
type HousekeepingService struct {
	Store    store.Store
	Revoked  store.RevokedTokens
	Settings Settings
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
// Revoked defaults to the store's own list.
func NewHousekeepingService(st store.Store, revoked store.RevokedTokens, settings Settings, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if revoked == nil {
		revoked = st.RevokedTokens()
	}
	return &HousekeepingService{
		Store:    st,
		Revoked:  revoked,
		Settings: settings,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a cleanup immediately and then on every tick until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval))
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

type CleanupReport struct {
	RevokedTokensDeleted int64
	OTPSlotsCleared      int64
}

// Cleanup runs one pass. Each step is independent; a failure in one does not
// stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) CleanupReport {
	now := nowOr(s.Now)
	var rep CleanupReport

	n, err := s.Revoked.DeleteExpiredRevokedTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired revoked tokens", slog.Any("error", err))
	} else {
		rep.RevokedTokensDeleted = n
	}

	// a slot is only cleared once it has been expired for a full TTL
	cutoff := now.Add(-settingsOrDefault(s.Settings).OTPTTL())
	n, err = s.Store.Users().ClearStaleOTPs(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to clear stale otps", slog.Any("error", err))
	} else {
		rep.OTPSlotsCleared = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int64("revoked_tokens_deleted", rep.RevokedTokensDeleted),
		slog.Int64("otp_slots_cleared", rep.OTPSlotsCleared),
	)
	return rep
}
