package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
)

type companiesRepo struct {
	db dbtx
}

const companyColumns = `
	id, name, alias, business_email, backup_email, address, timezone, status,
	subscription_plan, onboarding_completed, settings, metadata,
	approved_at, approved_by, rejection_reason, last_activity_at, created_at, updated_at`

func scanCompany(row rowScanner) (domain.Company, error) {
	var (
		c                    domain.Company
		status               string
		address              sql.NullString
		settings, metadata   string
		approvedAt, activity sql.NullTime
	)

	err := row.Scan(
		&c.ID, &c.Name, &c.Alias, &c.BusinessEmail, &c.BackupEmail, &address, &c.Timezone, &status,
		&c.SubscriptionPlan, &c.OnboardingCompleted, &settings, &metadata,
		&approvedAt, &c.ApprovedBy, &c.RejectionReason, &activity, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Company{}, err
	}

	c.Status = domain.CompanyStatus(status)
	if address.Valid && address.String != "" {
		c.Address = &domain.Address{}
		if err := json.Unmarshal([]byte(address.String), c.Address); err != nil {
			return domain.Company{}, fmt.Errorf("decode company address: %w", err)
		}
	}
	c.Settings = domain.DefaultCompanySettings()
	if err := json.Unmarshal([]byte(settings), &c.Settings); err != nil {
		return domain.Company{}, fmt.Errorf("decode company settings: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &c.Metadata); err != nil {
		return domain.Company{}, fmt.Errorf("decode company metadata: %w", err)
	}
	c.ApprovedAt = mapNullTimePtr(approvedAt)
	c.LastActivityAt = mapNullTimePtr(activity)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func companyArgs(c domain.Company) ([]any, error) {
	var address sql.NullString
	if c.Address != nil {
		b, err := json.Marshal(c.Address)
		if err != nil {
			return nil, err
		}
		address = sql.NullString{String: string(b), Valid: true}
	}
	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return nil, err
	}
	metadata, err := json.Marshal(c.Metadata)
	if err != nil {
		return nil, err
	}

	return []any{
		c.Name, c.Alias, c.BusinessEmail, c.BackupEmail, address, c.Timezone, string(c.Status),
		c.SubscriptionPlan, c.OnboardingCompleted, string(settings), string(metadata),
		mapOptionalTime(c.ApprovedAt), c.ApprovedBy, c.RejectionReason, mapOptionalTime(c.LastActivityAt),
	}, nil
}

func (r *companiesRepo) getOne(ctx context.Context, where string, arg any) (domain.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE `+where, arg)
	c, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *companiesRepo) GetCompanyByAlias(ctx context.Context, alias string) (domain.Company, error) {
	return r.getOne(ctx, `alias = lower(?)`, alias)
}

// GetCompanyByName matches case-insensitively, like the unique index.
func (r *companiesRepo) GetCompanyByName(ctx context.Context, name string) (domain.Company, error) {
	return r.getOne(ctx, `name = ? COLLATE NOCASE`, name)
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	args, err := companyArgs(c)
	if err != nil {
		return err
	}
	args = append([]any{c.ID}, args...)
	args = append(args, c.CreatedAt.UTC(), c.UpdatedAt.UTC())

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO companies (
			id, name, alias, business_email, backup_email, address, timezone, status,
			subscription_plan, onboarding_completed, settings, metadata,
			approved_at, approved_by, rejection_reason, last_activity_at, created_at, updated_at
		) VALUES (`+placeholders(18)+`)`, args...)
	return mapConstraint(err)
}

func (r *companiesRepo) UpdateCompany(ctx context.Context, c domain.Company) error {
	args, err := companyArgs(c)
	if err != nil {
		return err
	}
	args = append(args, c.UpdatedAt.UTC(), c.ID)

	res, err := r.db.ExecContext(ctx, `
		UPDATE companies SET
			name = ?, alias = ?, business_email = ?, backup_email = ?, address = ?, timezone = ?, status = ?,
			subscription_plan = ?, onboarding_completed = ?, settings = ?, metadata = ?,
			approved_at = ?, approved_by = ?, rejection_reason = ?, last_activity_at = ?,
			updated_at = ?
		WHERE id = ?`, args...)
	if err != nil {
		return mapConstraint(err)
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

var companySortColumns = map[string]string{
	"":          "created_at",
	"createdAt": "created_at",
	"name":      "name",
	"status":    "status",
}

func (r *companiesRepo) ListCompanies(ctx context.Context, f store.CompanyFilter) ([]domain.Company, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, string(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(strings.ToLower(s)) + "%"
		conds = append(conds, `(lower(name) LIKE ? ESCAPE '\' OR alias LIKE ? ESCAPE '\' OR lower(business_email) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := companySortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "ASC"
	if f.SortDesc {
		order = "DESC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies`+where+
			` ORDER BY `+column+` `+order+`, id `+order+` LIMIT ? OFFSET ?`,
		append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

func (r *companiesRepo) CountCompaniesByStatus(ctx context.Context) (map[domain.CompanyStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.CompanyStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.CompanyStatus(status)] = n
	}
	return counts, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
