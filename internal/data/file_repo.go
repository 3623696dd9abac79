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

// ErrFileNotFound is returned when a stored file is not found.
var ErrFileNotFound = errors.New("file not found")

const fileColumns = `id, owner_id, name, content_type, size_bytes, data, created_at`

// FileRepo stores uploaded documents (resumes, logos) in the database.
type FileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewFileRepo creates a FileRepo with the real time provider.
func NewFileRepo(db *sql.DB) *FileRepo {
	return &FileRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// Create stores a new file owned by ownerID and returns the stored record
// including its generated id.
func (r *FileRepo) Create(ctx context.Context, ownerID, name, contentType string, data []byte) (*model.StoredFile, error) {
	if len(data) == 0 {
		return nil, errors.New("file data is required")
	}
	if len(data) > model.MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", model.MaxUploadBytes)
	}

	now := r.timeProvider.Now().UTC()
	var out model.StoredFile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO files (id, owner_id, name, content_type, size_bytes, data, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+fileColumns,
			uuid.NewString(), ownerID, name, contentType, int64(len(data)), data, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.StoredFile])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create file: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a stored file, including its data, by id.
func (r *FileRepo) GetByID(ctx context.Context, id string) (*model.StoredFile, error) {
	var out model.StoredFile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.StoredFile])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("get file: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete removes a stored file owned by ownerID.
func (r *FileRepo) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM files WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete file rows affected: %w", err)
	}
	if n == 0 {
		return ErrFileNotFound
	}
	return nil
}
