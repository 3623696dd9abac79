package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hireloop/hireloop/internal/data/pgxutil"
	"github.com/hireloop/hireloop/internal/domain/model"
	apperrors "github.com/hireloop/hireloop/internal/errors"
)

// ErrEmployerNotFound is returned when an employer is not found.
var ErrEmployerNotFound = errors.New("employer not found")

const employerColumns = `id, email, password_hash, company_name, website, website_domain, about, location, logo_id, setup_done, created_at, updated_at`

// EmployerRepo provides database operations for employer accounts.
type EmployerRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEmployerRepo creates an EmployerRepo with the real time provider.
func NewEmployerRepo(db *sql.DB) *EmployerRepo {
	return &EmployerRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// Create inserts a new employer account.
func (r *EmployerRepo) Create(ctx context.Context, req *model.SignupEmployerRequest, passwordHash, websiteDomain string) (*model.Employer, error) {
	if req == nil {
		return nil, errors.New("signup request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Employer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO employers (id, email, password_hash, company_name, website, website_domain, about, location, logo_id, setup_done, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, '', '', NULL, false, $7, $7)
			RETURNING `+employerColumns,
			uuid.NewString(),
			strings.ToLower(strings.TrimSpace(req.Email)),
			passwordHash,
			strings.TrimSpace(req.CompanyName),
			strings.TrimSpace(req.Website),
			websiteDomain,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employer])
		return err
	})
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsConflict(mapped) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create employer: %w", mapped)
	}
	return &out, nil
}

// GetByID retrieves an employer by id.
func (r *EmployerRepo) GetByID(ctx context.Context, id string) (*model.Employer, error) {
	return r.getBy(ctx, `SELECT `+employerColumns+` FROM employers WHERE id = $1`, id)
}

// GetByEmail retrieves an employer by email (case-insensitive).
func (r *EmployerRepo) GetByEmail(ctx context.Context, email string) (*model.Employer, error) {
	return r.getBy(ctx, `SELECT `+employerColumns+` FROM employers WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *EmployerRepo) getBy(ctx context.Context, query, arg string) (*model.Employer, error) {
	var out model.Employer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employer])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployerNotFound
		}
		return nil, fmt.Errorf("get employer: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Update applies a partial company-profile update and marks setup done when
// the profile gains a company name and about section.
func (r *EmployerRepo) Update(ctx context.Context, id string, req *model.UpdateEmployerRequest, websiteDomain *string) (*model.Employer, error) {
	if req == nil {
		return nil, errors.New("update request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Employer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE employers
			SET company_name   = COALESCE($2, company_name),
			    website        = COALESCE($3, website),
			    website_domain = COALESCE($4, website_domain),
			    about          = COALESCE($5, about),
			    location       = COALESCE($6, location),
			    logo_id        = COALESCE($7, logo_id),
			    setup_done     = setup_done OR (COALESCE($5, about) <> ''),
			    updated_at     = $8
			WHERE id = $1
			RETURNING `+employerColumns,
			id, req.CompanyName, req.Website, websiteDomain, req.About, req.Location, req.LogoID, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employer])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployerNotFound
		}
		return nil, fmt.Errorf("update employer: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}
