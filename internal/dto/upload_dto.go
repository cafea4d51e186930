package dto

import "github.com/google/uuid"

type UploadProgressResponse struct {
	UploadId uuid.UUID  `json:"upload_id"`
	State    string     `json:"state"`
	Progress int        `json:"progress"`
	Error    string     `json:"error,omitempty"`
	NoteId   *uuid.UUID `json:"note_id,omitempty"`
}
