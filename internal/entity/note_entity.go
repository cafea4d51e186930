package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id          uuid.UUID
	Title       string
	Subject     string
	Description string
	File        FileRef
	UploadedBy  string
	UploadedAt  time.Time
	Downloads   int
	Rating      float64
	Preview     string
}

// FileRef points at the stored PDF behind a note.
type FileRef struct {
	Url         string
	Name        string
	Size        int64
	ContentType string
	ObjectKey   string
}
