// repository/lookup/repo.go
package lookuprepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

// Repo serves the lookup tables. Rows are keyed by business code; writers
// rely on the unique indexes for duplicate detection.
type Repo interface {
	ListMembershipTypes(ctx context.Context) ([]model.MembershipType, error)
	MembershipTypeByLevel(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error)
	CreateMembershipType(ctx context.Context, level model.MembershipLevel, monthlyCost decimal.Decimal) (int64, error)

	ListFeeTypes(ctx context.Context) ([]model.FeeType, error)
	FeeTypeByKind(ctx context.Context, kind model.FeeKind) (*model.FeeType, error)
	CreateFeeType(ctx context.Context, kind model.FeeKind, defaultAmount *decimal.Decimal) (int64, error)

	ListGenres(ctx context.Context) ([]model.Genre, error)
	CreateGenre(ctx context.Context, name string) (int64, error)

	ListFormats(ctx context.Context) ([]model.Format, error)
	FormatByID(ctx context.Context, id int64) (*model.Format, error)
	CreateFormat(ctx context.Context, formatType string) (int64, error)

	ListPromoCodes(ctx context.Context) ([]model.PromoCode, error)
	PromoByCode(ctx context.Context, code string) (*model.PromoCode, error)
	CreatePromoCode(ctx context.Context, p *model.PromoCode) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) ListMembershipTypes(ctx context.Context) ([]model.MembershipType, error) {
	const q = `
		SELECT membership_id, type, monthly_cost_dkk
		FROM membership_types
		ORDER BY membership_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MembershipType
	for rows.Next() {
		var m model.MembershipType
		if err := rows.Scan(&m.MembershipID, &m.Type, &m.MonthlyCostDkk); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) MembershipTypeByLevel(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error) {
	const q = `
		SELECT membership_id, type, monthly_cost_dkk
		FROM membership_types
		WHERE type = $1`
	var m model.MembershipType
	err := r.db.QueryRowContext(ctx, q, level).Scan(&m.MembershipID, &m.Type, &m.MonthlyCostDkk)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) CreateMembershipType(ctx context.Context, level model.MembershipLevel, monthlyCost decimal.Decimal) (int64, error) {
	const q = `
		INSERT INTO membership_types (type, monthly_cost_dkk)
		VALUES ($1, $2)
		RETURNING membership_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, level, monthlyCost).Scan(&id)
	return id, err
}

func (r *repo) ListFeeTypes(ctx context.Context) ([]model.FeeType, error) {
	const q = `
		SELECT fee_id, fee_type, default_amount_dkk
		FROM fee_types
		ORDER BY fee_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FeeType
	for rows.Next() {
		var f model.FeeType
		var amount decimal.NullDecimal
		if err := rows.Scan(&f.FeeID, &f.FeeType, &amount); err != nil {
			return nil, err
		}
		if amount.Valid {
			f.DefaultAmountDkk = &amount.Decimal
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *repo) FeeTypeByKind(ctx context.Context, kind model.FeeKind) (*model.FeeType, error) {
	const q = `
		SELECT fee_id, fee_type, default_amount_dkk
		FROM fee_types
		WHERE fee_type = $1`
	var f model.FeeType
	var amount decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, q, kind).Scan(&f.FeeID, &f.FeeType, &amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if amount.Valid {
		f.DefaultAmountDkk = &amount.Decimal
	}
	return &f, nil
}

func (r *repo) CreateFeeType(ctx context.Context, kind model.FeeKind, defaultAmount *decimal.Decimal) (int64, error) {
	const q = `
		INSERT INTO fee_types (fee_type, default_amount_dkk)
		VALUES ($1, $2)
		RETURNING fee_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, kind, nullDecimal(defaultAmount)).Scan(&id)
	return id, err
}

func (r *repo) ListGenres(ctx context.Context) ([]model.Genre, error) {
	const q = `SELECT genre_id, name FROM genres ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.GenreID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *repo) CreateGenre(ctx context.Context, name string) (int64, error) {
	const q = `INSERT INTO genres (name) VALUES ($1) RETURNING genre_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, name).Scan(&id)
	return id, err
}

func (r *repo) ListFormats(ctx context.Context) ([]model.Format, error) {
	const q = `SELECT format_id, type FROM formats ORDER BY format_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Format
	for rows.Next() {
		var f model.Format
		if err := rows.Scan(&f.FormatID, &f.Type); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *repo) FormatByID(ctx context.Context, id int64) (*model.Format, error) {
	const q = `SELECT format_id, type FROM formats WHERE format_id = $1`
	var f model.Format
	err := r.db.QueryRowContext(ctx, q, id).Scan(&f.FormatID, &f.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repo) CreateFormat(ctx context.Context, formatType string) (int64, error) {
	const q = `INSERT INTO formats (type) VALUES ($1) RETURNING format_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, formatType).Scan(&id)
	return id, err
}

func (r *repo) ListPromoCodes(ctx context.Context) ([]model.PromoCode, error) {
	const q = `
		SELECT promo_code_id, code, description, percent_off, amount_off_dkk, starts_at, ends_at
		FROM promo_codes
		ORDER BY promo_code_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PromoCode
	for rows.Next() {
		p, err := scanPromo(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repo) PromoByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	const q = `
		SELECT promo_code_id, code, description, percent_off, amount_off_dkk, starts_at, ends_at
		FROM promo_codes
		WHERE code = $1`
	p, err := scanPromo(r.db.QueryRowContext(ctx, q, code).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) CreatePromoCode(ctx context.Context, p *model.PromoCode) (int64, error) {
	const q = `
		INSERT INTO promo_codes (code, description, percent_off, amount_off_dkk, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING promo_code_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		p.Code, p.Description, nullDecimal(p.PercentOff), nullDecimal(p.AmountOffDkk), p.StartsAt, p.EndsAt,
	).Scan(&id)
	return id, err
}

func scanPromo(scan func(...any) error) (*model.PromoCode, error) {
	var p model.PromoCode
	var percent, amount decimal.NullDecimal
	err := scan(&p.PromoCodeID, &p.Code, &p.Description, &percent, &amount, &p.StartsAt, &p.EndsAt)
	if err != nil {
		return nil, err
	}
	if percent.Valid {
		p.PercentOff = &percent.Decimal
	}
	if amount.Valid {
		p.AmountOffDkk = &amount.Decimal
	}
	return &p, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
