package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hireloop/hireloop/internal/domain/model"
)

// allowedUploadTypes whitelists document and image uploads (resumes, logos).
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/svg+xml":   true,
}

// FileRepository is the persistence surface FileService needs.
type FileRepository interface {
	Create(ctx context.Context, ownerID, name, contentType string, data []byte) (*model.StoredFile, error)
	GetByID(ctx context.Context, id string) (*model.StoredFile, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// FileServiceOptions groups dependencies for FileService.
type FileServiceOptions struct {
	Repo FileRepository
}

// FileService stores and retrieves uploaded documents.
type FileService struct {
	repo FileRepository
}

// NewFileService constructs a new FileService.
func NewFileService(opts FileServiceOptions) *FileService {
	return &FileService{repo: opts.Repo}
}

// Upload validates and stores a document owned by ownerID.
func (s *FileService) Upload(ctx context.Context, ownerID, name, contentType string, data []byte) (*model.StoredFile, error) {
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}
	if len(data) == 0 {
		return nil, errors.New("file is empty")
	}
	if len(data) > model.MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", model.MaxUploadBytes)
	}

	contentType = normalizeContentType(contentType)
	if !allowedUploadTypes[contentType] {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, errors.New("file name is required")
	}

	return s.repo.Create(ctx, ownerID, name, contentType, data)
}

// Get retrieves a stored file by id.
func (s *FileService) Get(ctx context.Context, id string) (*model.StoredFile, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a stored file owned by ownerID.
func (s *FileService) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}

// normalizeContentType drops any media-type parameters and lowercases.
func normalizeContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
