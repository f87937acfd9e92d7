package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `
	id, email, name, phone, role, company_id, status, permissions,
	email_verified, email_verified_at, two_factor_enabled, last_login,
	otp_code_hash, otp_expires_at, otp_attempts, otp_verified,
	login_attempts, lock_until, last_login_ip, last_user_agent, last_otp_request, otp_request_count,
	invitation_token_hash, invitation_token_sealed, invitation_expiry, invited_by, invitation_accepted_at,
	pending_email, email_change_hash, email_change_expiry,
	deactivation_reason, deactivated_at, deactivated_by,
	version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                                                  domain.User
		role, status, permissions                          string
		emailVerifiedAt, lastLogin                         sql.NullTime
		otpHash                                            sql.NullString
		otpExpires                                         sql.NullTime
		otpAttempts                                        int
		otpVerified                                        bool
		lockUntil, lastOTPRequest                          sql.NullTime
		invitationHash, invitationSealed                   sql.NullString
		invitationExpiry, acceptedAt, changeExpiry, deactAt sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &role, &u.CompanyID, &status, &permissions,
		&u.EmailVerified, &emailVerifiedAt, &u.TwoFactorEnabled, &lastLogin,
		&otpHash, &otpExpires, &otpAttempts, &otpVerified,
		&u.Security.LoginAttempts, &lockUntil, &u.Security.LastLoginIP, &u.Security.LastUserAgent,
		&lastOTPRequest, &u.Security.OTPRequestCount,
		&invitationHash, &invitationSealed, &invitationExpiry, &u.Invitation.InvitedBy, &acceptedAt,
		&u.EmailChange.PendingEmail, &u.EmailChange.TokenHash, &changeExpiry,
		&u.Deactivation.Reason, &deactAt, &u.Deactivation.By,
		&u.Version, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	u.Permissions = splitList(permissions)
	u.EmailVerifiedAt = mapNullTimePtr(emailVerifiedAt)
	u.LastLogin = mapNullTimePtr(lastLogin)
	if otpHash.Valid {
		u.OTP = &domain.OTP{
			CodeHash:  otpHash.String,
			ExpiresAt: otpExpires.Time.UTC(),
			Attempts:  otpAttempts,
			Verified:  otpVerified,
		}
	}
	u.Security.LockUntil = mapNullTimePtr(lockUntil)
	u.Security.LastOTPRequest = mapNullTimePtr(lastOTPRequest)
	u.Invitation.TokenHash = mapNullString(invitationHash)
	u.Invitation.TokenSealed = mapNullString(invitationSealed)
	u.Invitation.Expiry = mapNullTimePtr(invitationExpiry)
	u.Invitation.AcceptedAt = mapNullTimePtr(acceptedAt)
	u.EmailChange.Expiry = mapNullTimePtr(changeExpiry)
	u.Deactivation.At = mapNullTimePtr(deactAt)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

// userArgs returns the mutable columns in the order used by insert and update.
func userArgs(u domain.User) []any {
	var (
		otpHash     sql.NullString
		otpExpires  sql.NullTime
		otpAttempts int
		otpVerified bool
	)
	if u.OTP != nil {
		otpHash = sql.NullString{String: u.OTP.CodeHash, Valid: true}
		otpExpires = mapOptionalTime(&u.OTP.ExpiresAt)
		otpAttempts = u.OTP.Attempts
		otpVerified = u.OTP.Verified
	}

	return []any{
		u.Email, u.Name, u.Phone, string(u.Role), u.CompanyID, string(u.Status), joinList(u.Permissions),
		u.EmailVerified, mapOptionalTime(u.EmailVerifiedAt), u.TwoFactorEnabled, mapOptionalTime(u.LastLogin),
		otpHash, otpExpires, otpAttempts, otpVerified,
		u.Security.LoginAttempts, mapOptionalTime(u.Security.LockUntil), u.Security.LastLoginIP, u.Security.LastUserAgent,
		mapOptionalTime(u.Security.LastOTPRequest), u.Security.OTPRequestCount,
		mapStringNull(u.Invitation.TokenHash), mapStringNull(u.Invitation.TokenSealed),
		mapOptionalTime(u.Invitation.Expiry), u.Invitation.InvitedBy,
		mapOptionalTime(u.Invitation.AcceptedAt),
		u.EmailChange.PendingEmail, u.EmailChange.TokenHash, mapOptionalTime(u.EmailChange.Expiry),
		u.Deactivation.Reason, mapOptionalTime(u.Deactivation.At), u.Deactivation.By,
	}
}

func (r *usersRepo) getOne(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `email = lower(?)`, email)
}

func (r *usersRepo) GetUserByInvitationHash(ctx context.Context, hash string) (domain.User, error) {
	if hash == "" {
		return domain.User{}, store.ErrNotFound
	}
	return r.getOne(ctx, `invitation_token_hash = ?`, hash)
}

func (r *usersRepo) GetMembership(ctx context.Context, userID string) (domain.Membership, error) {
	u, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return domain.Membership{}, err
	}
	c, err := (&companiesRepo{db: r.db}).GetCompanyByID(ctx, u.CompanyID)
	if err != nil {
		return domain.Membership{}, err
	}
	return domain.Membership{User: u, Company: c}, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	args := append([]any{u.ID}, userArgs(u)...)
	args = append(args, u.CreatedAt.UTC(), u.UpdatedAt.UTC())

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, name, phone, role, company_id, status, permissions,
			email_verified, email_verified_at, two_factor_enabled, last_login,
			otp_code_hash, otp_expires_at, otp_attempts, otp_verified,
			login_attempts, lock_until, last_login_ip, last_user_agent, last_otp_request, otp_request_count,
			invitation_token_hash, invitation_token_sealed, invitation_expiry, invited_by, invitation_accepted_at,
			pending_email, email_change_hash, email_change_expiry,
			deactivation_reason, deactivated_at, deactivated_by,
			version, created_at, updated_at
		) VALUES (`+placeholders(33)+`, 1, ?, ?)`, args...)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	args := userArgs(u)
	args = append(args, u.UpdatedAt.UTC(), u.ID, u.Version)

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			email = ?, name = ?, phone = ?, role = ?, company_id = ?, status = ?, permissions = ?,
			email_verified = ?, email_verified_at = ?, two_factor_enabled = ?, last_login = ?,
			otp_code_hash = ?, otp_expires_at = ?, otp_attempts = ?, otp_verified = ?,
			login_attempts = ?, lock_until = ?, last_login_ip = ?, last_user_agent = ?,
			last_otp_request = ?, otp_request_count = ?,
			invitation_token_hash = ?, invitation_token_sealed = ?, invitation_expiry = ?, invited_by = ?,
			invitation_accepted_at = ?,
			pending_email = ?, email_change_hash = ?, email_change_expiry = ?,
			deactivation_reason = ?, deactivated_at = ?, deactivated_by = ?,
			updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`, args...)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, err
	}
	if n == 0 {
		if _, err := r.GetUserByID(ctx, u.ID); err != nil {
			return domain.User{}, err
		}
		return domain.User{}, store.ErrConflict
	}

	u.Version++
	return u, nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ListUsers(ctx context.Context, f store.UserFilter) ([]domain.User, int, error) {
	where := `company_id = ?`
	args := []any{f.CompanyID}
	if f.Status != "" {
		where += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Role != "" {
		where += ` AND role = ?`
		args = append(args, string(f.Role))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *usersRepo) CountUsersByStatus(ctx context.Context, companyID string) (map[domain.UserStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM users WHERE company_id = ? GROUP BY status`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.UserStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.UserStatus(status)] = n
	}
	return counts, rows.Err()
}

func (r *usersRepo) FirstUserByRole(ctx context.Context, companyID string, role domain.Role) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = ? AND role = ? ORDER BY created_at ASC, id ASC LIMIT 1`,
		companyID, string(role))
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) SetCompanyUsersStatus(
	ctx context.Context,
	companyID string,
	from []domain.UserStatus,
	to domain.UserStatus,
	now time.Time,
) (int64, error) {
	query := `UPDATE users SET status = ?, updated_at = ?, version = version + 1 WHERE company_id = ?`
	args := []any{string(to), now.UTC(), companyID}
	if len(from) > 0 {
		query += ` AND status IN (` + placeholders(len(from)) + `)`
		for _, s := range from {
			args = append(args, string(s))
		}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) ClearStaleOTPs(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			otp_code_hash = NULL, otp_expires_at = NULL, otp_attempts = 0, otp_verified = 0,
			version = version + 1
		WHERE otp_code_hash IS NOT NULL AND otp_expires_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, string(domain.RoleAdmin)).Scan(&n)
	return n, err
}
