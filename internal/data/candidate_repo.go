// Package data provides PostgreSQL repositories for the hireloop domain.
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

var (
	// ErrCandidateNotFound is returned when a candidate is not found.
	ErrCandidateNotFound = errors.New("candidate not found")
	// ErrEmailExists is returned when an account email is already registered.
	ErrEmailExists = errors.New("email already registered")
)

const candidateColumns = `id, email, password_hash, full_name, headline, location, skills, experience, resume_id, setup_done, created_at, updated_at`

// CandidateRepo provides database operations for candidate accounts.
type CandidateRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCandidateRepo creates a CandidateRepo with the real time provider.
func NewCandidateRepo(db *sql.DB) *CandidateRepo {
	return &CandidateRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// Create inserts a new candidate account from a completed signup.
func (r *CandidateRepo) Create(ctx context.Context, req *model.SignupCandidateRequest, passwordHash string) (*model.Candidate, error) {
	if req == nil {
		return nil, errors.New("signup request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Candidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO candidates (id, email, password_hash, full_name, headline, location, skills, experience, resume_id, setup_done, created_at, updated_at)
			VALUES ($1, $2, $3, $4, '', '', '{}', '', NULL, false, $5, $5)
			RETURNING `+candidateColumns,
			uuid.NewString(),
			strings.ToLower(strings.TrimSpace(req.Email)),
			passwordHash,
			strings.TrimSpace(req.FullName),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Candidate])
		return err
	})
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsConflict(mapped) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create candidate: %w", mapped)
	}
	return &out, nil
}

// GetByID retrieves a candidate by id.
func (r *CandidateRepo) GetByID(ctx context.Context, id string) (*model.Candidate, error) {
	return r.getBy(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
}

// GetByEmail retrieves a candidate by email (case-insensitive).
func (r *CandidateRepo) GetByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	return r.getBy(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *CandidateRepo) getBy(ctx context.Context, query, arg string) (*model.Candidate, error) {
	var out model.Candidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Candidate])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("get candidate: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// CompleteSetup stores the wizard fields and marks setup done.
func (r *CandidateRepo) CompleteSetup(ctx context.Context, id string, req *model.SetupProfileRequest) (*model.Candidate, error) {
	if req == nil {
		return nil, errors.New("setup request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Candidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE candidates
			SET headline = $2, location = $3, skills = $4, experience = $5, resume_id = $6, setup_done = true, updated_at = $7
			WHERE id = $1
			RETURNING `+candidateColumns,
			id,
			strings.TrimSpace(req.Headline),
			strings.TrimSpace(req.Location),
			req.Skills,
			req.Experience,
			req.ResumeID,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Candidate])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("complete candidate setup: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Update applies a partial profile update; nil fields keep current values.
func (r *CandidateRepo) Update(ctx context.Context, id string, req *model.UpdateCandidateRequest) (*model.Candidate, error) {
	if req == nil {
		return nil, errors.New("update request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Candidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE candidates
			SET full_name  = COALESCE($2, full_name),
			    headline   = COALESCE($3, headline),
			    location   = COALESCE($4, location),
			    skills     = COALESCE($5, skills),
			    experience = COALESCE($6, experience),
			    resume_id  = COALESCE($7, resume_id),
			    updated_at = $8
			WHERE id = $1
			RETURNING `+candidateColumns,
			id, req.FullName, req.Headline, req.Location, req.Skills, req.Experience, req.ResumeID, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Candidate])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("update candidate: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Search lists setup-complete candidates matching the filter.
func (r *CandidateRepo) Search(ctx context.Context, filter model.CandidateFilter) ([]*model.Candidate, error) {
	filter.Normalize()

	var rowsOut []model.Candidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+candidateColumns+`
			FROM candidates
			WHERE setup_done = true
			  AND ($1 = '' OR $1 = ANY(skills))
			  AND ($2 = '' OR location ILIKE '%' || $2 || '%')
			  AND ($3 = '' OR full_name ILIKE '%' || $3 || '%' OR headline ILIKE '%' || $3 || '%')
			ORDER BY updated_at DESC
			LIMIT $4 OFFSET $5`,
			filter.Skill, filter.Location, filter.Query, filter.Limit, filter.Offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Candidate])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.Candidate, len(rowsOut))
	for i := range rowsOut {
		out[i] = &rowsOut[i]
	}
	return out, nil
}
