package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/pkg/jwtx"
	"github.com/yukti/platform/pkg/slogx"
)

// TokenService mints and rotates access/refresh pairs. The two token kinds
// use separate secrets, so each has its own signer and verifier.
type TokenService struct {
	Store    store.Store
	Revoked  store.RevokedTokens
	Settings Settings
	Issuer   string
	Metrics  *Metrics
	Now      func() time.Time

	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	AccessVerifier  jwtx.Verifier
	RefreshVerifier jwtx.Verifier
}

func identityOf(u domain.User) jwtx.Identity {
	return jwtx.Identity{
		UserID:      u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		CompanyID:   u.CompanyID,
		Permissions: u.Permissions,
	}
}

// revoked falls back to the store's own deny list.
func (s *TokenService) revoked() store.RevokedTokens {
	if s.Revoked != nil {
		return s.Revoked
	}
	return s.Store.RevokedTokens()
}

// Mint signs a fresh pair for u. Both tokens are signed concurrently.
func (s *TokenService) Mint(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	now := nowOr(s.Now)
	settings := settingsOrDefault(s.Settings)
	id := identityOf(u)

	access := jwtx.NewClaims(id, jwtx.TypeAccess, s.Issuer, settings.AccessTokenTTL(), now)
	refresh := jwtx.NewClaims(id, jwtx.TypeRefresh, s.Issuer, settings.RefreshTokenTTL(), now)

	var pair domain.TokenPair
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		signed, err := s.AccessSigner.Sign(access)
		if err != nil {
			return fmt.Errorf("sign access token: %w", err)
		}
		pair.AccessToken = signed
		pair.AccessExpiresAt = access.Expiry()
		return nil
	})
	g.Go(func() error {
		signed, err := s.RefreshSigner.Sign(refresh)
		if err != nil {
			return fmt.Errorf("sign refresh token: %w", err)
		}
		pair.RefreshToken = signed
		pair.RefreshExpiresAt = refresh.Expiry()
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Refresh rotates a refresh token into a new pair and revokes the presented
// one, so each refresh token is usable once. Every failure is reported as
// ErrInvalidRefreshToken.
func (s *TokenService) Refresh(ctx context.Context, raw string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	claims, err := s.RefreshVerifier.Verify(raw)
	if err != nil {
		log.Debug("refresh token rejected", slog.Any("error", err))
		s.Metrics.tokenRefresh("invalid")
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	revoked, err := s.revoked().IsTokenRevoked(ctx, claims.ID, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		log.Warn("revoked refresh token presented",
			slog.String("user_id", claims.Subject),
			slog.String("jti", claims.ID),
		)
		s.Metrics.tokenRefresh("reused")
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.tokenRefresh("invalid")
			return domain.TokenPair{}, ErrInvalidRefreshToken
		}
		return domain.TokenPair{}, fmt.Errorf("load user: %w", err)
	}
	if !user.Status.CanAuthenticate() {
		s.Metrics.tokenRefresh("inactive")
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	claimed, err := s.revoked().RevokeToken(ctx, domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.Subject,
		Reason:    "rotated",
		ExpiresAt: claims.Expiry(),
		CreatedAt: now,
	})
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("revoke refresh token: %w", err)
	}
	if !claimed {
		// Another request rotated the same token first.
		s.Metrics.tokenRefresh("reused")
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := s.Mint(ctx, user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	s.Metrics.tokenRefresh("rotated")
	return pair, nil
}

// Revoke puts a refresh token's JTI on the deny list. Tokens that do not
// verify are ignored.
func (s *TokenService) Revoke(ctx context.Context, raw, reason string) error {
	claims, err := s.RefreshVerifier.Verify(raw)
	if err != nil {
		return nil
	}
	_, err = s.revoked().RevokeToken(ctx, domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.Subject,
		Reason:    reason,
		ExpiresAt: claims.Expiry(),
		CreatedAt: nowOr(s.Now),
	})
	return err
}

// VerifyAccess checks an access token's signature, expiry and type.
func (s *TokenService) VerifyAccess(raw string) (jwtx.Claims, error) {
	return s.AccessVerifier.Verify(raw)
}
