package entity

import (
	"time"

	"github.com/google/uuid"
)

type UploadState string

const (
	UploadStateIdle        UploadState = "idle"
	UploadStateValidating  UploadState = "validating"
	UploadStateRejected    UploadState = "rejected"
	UploadStateNormalizing UploadState = "normalizing"
	UploadStateUploading   UploadState = "uploading"
	UploadStateRecording   UploadState = "recording"
	UploadStateDone        UploadState = "done"
)

// Active reports whether a session in this state still blocks a new submission.
func (s UploadState) Active() bool {
	switch s {
	case UploadStateValidating, UploadStateNormalizing, UploadStateUploading, UploadStateRecording:
		return true
	}
	return false
}

type UploadSession struct {
	Id        uuid.UUID
	Owner     string
	State     UploadState
	Progress  int
	Error     string
	NoteId    *uuid.UUID
	StartedAt time.Time
	UpdatedAt time.Time
}
