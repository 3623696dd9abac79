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

// ErrBenchCandidateNotFound is returned when a bench record is not found.
var ErrBenchCandidateNotFound = errors.New("bench candidate not found")

const benchColumns = `id, employer_id, full_name, email, headline, location, skills, experience, resume_id, resume_text, visibility, created_at, updated_at`

// BenchRepo provides database operations for employer bench rosters.
type BenchRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBenchRepo creates a BenchRepo with the real time provider.
func NewBenchRepo(db *sql.DB) *BenchRepo {
	return &BenchRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// Create adds a candidate to employerID's bench. resumeText is the plain text
// extracted from the uploaded resume, empty when no resume was attached.
func (r *BenchRepo) Create(ctx context.Context, employerID string, req *model.CreateBenchCandidateRequest, resumeText string) (*model.BenchCandidate, error) {
	if req == nil {
		return nil, errors.New("create bench candidate request is required")
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = model.BenchVisibilityInternal
	}
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	now := r.timeProvider.Now().UTC()
	var out model.BenchCandidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO bench_candidates (id, employer_id, full_name, email, headline, location, skills, experience, resume_id, resume_text, visibility, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
			RETURNING `+benchColumns,
			uuid.NewString(),
			employerID,
			strings.TrimSpace(req.FullName),
			strings.ToLower(strings.TrimSpace(req.Email)),
			strings.TrimSpace(req.Headline),
			strings.TrimSpace(req.Location),
			skills,
			req.Experience,
			req.ResumeID,
			resumeText,
			visibility,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BenchCandidate])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bench candidate: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a bench record by id.
func (r *BenchRepo) GetByID(ctx context.Context, id string) (*model.BenchCandidate, error) {
	var out model.BenchCandidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+benchColumns+` FROM bench_candidates WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BenchCandidate])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBenchCandidateNotFound
		}
		return nil, fmt.Errorf("get bench candidate: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete removes a bench record owned by employerID.
func (r *BenchRepo) Delete(ctx context.Context, id, employerID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bench_candidates WHERE id = $1 AND employer_id = $2`, id, employerID)
	if err != nil {
		return fmt.Errorf("delete bench candidate: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bench candidate rows affected: %w", err)
	}
	if n == 0 {
		return ErrBenchCandidateNotFound
	}
	return nil
}

// ListInternal lists employerID's own bench, both visibilities, newest first.
func (r *BenchRepo) ListInternal(ctx context.Context, employerID string, limit, offset int) ([]*model.BenchCandidate, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx, `
		SELECT `+benchColumns+`
		FROM bench_candidates
		WHERE employer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		employerID, limit, offset)
}

// ListExternal lists externally visible bench candidates across all
// employers, newest first.
func (r *BenchRepo) ListExternal(ctx context.Context, limit, offset int) ([]*model.BenchCandidate, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx, `
		SELECT `+benchColumns+`
		FROM bench_candidates
		WHERE visibility = 'external'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListOtherCompanies lists externally visible bench candidates owned by
// employers other than employerID, newest first.
func (r *BenchRepo) ListOtherCompanies(ctx context.Context, employerID string, limit, offset int) ([]*model.BenchCandidate, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx, `
		SELECT `+benchColumns+`
		FROM bench_candidates
		WHERE visibility = 'external' AND employer_id <> $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		employerID, limit, offset)
}

// Search matches employerID's bench against a free-text query over name,
// headline, skills and extracted resume text.
func (r *BenchRepo) Search(ctx context.Context, employerID, query string, limit, offset int) ([]*model.BenchCandidate, error) {
	limit, offset = clampPage(limit, offset)
	query = strings.TrimSpace(query)
	return r.list(ctx, `
		SELECT `+benchColumns+`
		FROM bench_candidates
		WHERE employer_id = $1
		  AND ($2 = ''
		       OR full_name ILIKE '%' || $2 || '%'
		       OR headline ILIKE '%' || $2 || '%'
		       OR resume_text ILIKE '%' || $2 || '%'
		       OR $2 = ANY(skills))
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		employerID, query, limit, offset)
}

func (r *BenchRepo) list(ctx context.Context, query string, args ...any) ([]*model.BenchCandidate, error) {
	var rowsOut []model.BenchCandidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BenchCandidate])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list bench candidates: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.BenchCandidate, len(rowsOut))
	for i := range rowsOut {
		out[i] = &rowsOut[i]
	}
	return out, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
