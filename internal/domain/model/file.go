package model

import "time"

// StoredFile is an uploaded document (resume, logo) retrievable by id.
type StoredFile struct {
	ID          string    `json:"id"           db:"id"`
	OwnerID     string    `json:"owner_id"     db:"owner_id"`
	Name        string    `json:"name"         db:"name"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes"   db:"size_bytes"`
	Data        []byte    `json:"-"            db:"data"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}

// MaxUploadBytes caps a single uploaded file.
const MaxUploadBytes = 10 << 20
