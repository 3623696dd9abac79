package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hireloop/hireloop/internal/data/pgxutil"
	"github.com/hireloop/hireloop/internal/domain/model"
	apperrors "github.com/hireloop/hireloop/internal/errors"
)

var (
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrAlreadyApplied is returned when a candidate applies twice to one job.
	ErrAlreadyApplied = errors.New("already applied to this job")
	// ErrJobClosed is returned when applying to a posting that is not open.
	ErrJobClosed = errors.New("job is not accepting applications")
)

const applicationColumns = `id, job_id, candidate_id, employer_id, status, cover_note, created_at, updated_at`

// ApplicationRepo provides database operations for job applications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates an ApplicationRepo with the real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// Create files a new application in the Sent state. It runs in a transaction
// so the open-posting check and the insert see the same snapshot; the owning
// employer id is copied from the posting.
func (r *ApplicationRepo) Create(ctx context.Context, candidateID string, req *model.CreateApplicationRequest) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("create application request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Application
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			var status model.JobStatus
			var employerID string
			err := tx.QueryRow(ctx,
				`SELECT status, employer_id FROM jobs WHERE id = $1 FOR SHARE`, req.JobID,
			).Scan(&status, &employerID)
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrJobNotFound
			}
			if err != nil {
				return err
			}
			if status != model.JobStatusOpen {
				return ErrJobClosed
			}

			rows, err := tx.Query(ctx, `
				INSERT INTO applications (id, job_id, candidate_id, employer_id, status, cover_note, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
				RETURNING `+applicationColumns,
				uuid.NewString(), req.JobID, candidateID, employerID, model.StatusSent, req.CoverNote, now,
			)
			if err != nil {
				return err
			}
			defer rows.Close()
			out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
			return err
		},
	})
	if err != nil {
		if errors.Is(err, ErrJobNotFound) || errors.Is(err, ErrJobClosed) {
			return nil, err
		}
		mapped := apperrors.MapDBError(err)
		if apperrors.IsConflict(mapped) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("create application: %w", mapped)
	}
	return &out, nil
}

// GetByID retrieves an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("get application: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// UpdateStatus moves an application owned by employerID to next. The current
// row is locked for the duration so concurrent updates serialize and the
// pipeline order check holds.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id, employerID string, next model.ApplicationStatus) (*model.Application, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Application
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, err := tx.Query(ctx,
				`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND employer_id = $2 FOR UPDATE`,
				id, employerID,
			)
			if err != nil {
				return err
			}
			app, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrApplicationNotFound
			}
			if err != nil {
				return err
			}

			if err := app.Transition(next); err != nil {
				return err
			}

			updated, err := tx.Query(ctx,
				`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+applicationColumns,
				id, app.Status, now,
			)
			if err != nil {
				return err
			}
			defer updated.Close()
			out, err = pgx.CollectOneRow(updated, pgx.RowToStructByName[model.Application])
			return err
		},
	})
	if err != nil {
		if errors.Is(err, ErrApplicationNotFound) || errors.Is(err, model.ErrIllegalTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("update application status: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ListByCandidate lists a candidate's applications, newest first.
func (r *ApplicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*model.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

// ListByEmployer lists applications received across an employer's postings,
// newest first.
func (r *ApplicationRepo) ListByEmployer(ctx context.Context, employerID string) ([]*model.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
}

// ListByJob lists applications to a single posting, newest first.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
}

func (r *ApplicationRepo) list(ctx context.Context, query, arg string) ([]*model.Application, error) {
	var rowsOut []model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.Application, len(rowsOut))
	for i := range rowsOut {
		out[i] = &rowsOut[i]
	}
	return out, nil
}
