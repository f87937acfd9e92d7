package sqlite

import (
	"context"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
)

type revokedTokensRepo struct {
	db dbtx
}

// RevokeToken keeps the first record when a JTI is revoked twice.
func (r *revokedTokensRepo) RevokeToken(ctx context.Context, t domain.RevokedToken) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (jti, user_id, reason, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (jti) DO NOTHING`,
		t.JTI, t.UserID, t.Reason, t.ExpiresAt.UTC(), t.CreatedAt.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, jti string, now time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revoked_tokens WHERE jti = ? AND expires_at > ?`, jti, now.UTC()).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
