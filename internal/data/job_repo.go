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

// ErrJobNotFound is returned when a job posting is not found.
var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, employer_id, title, description, location, skills, salary_range, status, created_at, updated_at`

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a JobRepo with the real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// Create inserts a new open posting owned by employerID.
func (r *JobRepo) Create(ctx context.Context, employerID string, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	now := r.timeProvider.Now().UTC()
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jobs (id, employer_id, title, description, location, skills, salary_range, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING `+jobColumns,
			uuid.NewString(),
			employerID,
			strings.TrimSpace(req.Title),
			req.Description,
			strings.TrimSpace(req.Location),
			skills,
			strings.TrimSpace(req.SalaryRange),
			model.JobStatusOpen,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a posting by id.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Update applies a partial update to a posting owned by employerID. Ownership
// is enforced in the WHERE clause so a foreign id reads as not-found.
func (r *JobRepo) Update(ctx context.Context, id, employerID string, req *model.UpdateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("update job request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE jobs
			SET title        = COALESCE($3, title),
			    description  = COALESCE($4, description),
			    location     = COALESCE($5, location),
			    skills       = COALESCE($6, skills),
			    salary_range = COALESCE($7, salary_range),
			    status       = COALESCE($8, status),
			    updated_at   = $9
			WHERE id = $1 AND employer_id = $2
			RETURNING `+jobColumns,
			id, employerID, req.Title, req.Description, req.Location, req.Skills, req.SalaryRange, req.Status, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete removes a posting owned by employerID.
func (r *JobRepo) Delete(ctx context.Context, id, employerID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1 AND employer_id = $2`, id, employerID)
	if err != nil {
		return fmt.Errorf("delete job: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job rows affected: %w", err)
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

// List retrieves postings matching the filter, newest first.
func (r *JobRepo) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	filter.Normalize()

	var rowsOut []model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+jobColumns+`
			FROM jobs
			WHERE ($1 = '' OR employer_id = $1)
			  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
			  AND ($3 = '' OR location ILIKE '%' || $3 || '%')
			  AND ($4 = '' OR $4 = ANY(skills))
			  AND (NOT $5 OR status = 'open')
			ORDER BY created_at DESC
			LIMIT $6 OFFSET $7`,
			filter.EmployerID, filter.Title, filter.Location, filter.Skill, filter.OpenOnly, filter.Limit, filter.Offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		out[i] = &rowsOut[i]
	}
	return out, nil
}
