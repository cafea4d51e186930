package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadNoteRequest struct {
	Title       string `form:"title" validate:"required,max=255"`
	Subject     string `form:"subject" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	UploadId    string `form:"upload_id" validate:"omitempty,uuid"`
}

type UploadNoteResponse struct {
	Id       uuid.UUID `json:"id"`
	UploadId uuid.UUID `json:"upload_id"`
	FileUrl  string    `json:"file_url"`
}

type ListNoteRequest struct {
	Query string `query:"q" validate:"max=255"`
}

type ShowNoteResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	FileUrl     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	FileType    string    `json:"file_type"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Downloads   int       `json:"downloads"`
	Rating      float64   `json:"rating"`
	Preview     string    `json:"preview,omitempty"`
}

type PublishNoteUploadedMessage struct {
	NoteId     uuid.UUID `json:"note_id"`
	ObjectKey  string    `json:"object_key"`
	UploadedBy string    `json:"uploaded_by"`
}
