package constant

import "time"

const (
	MaxNoteFileSize      int64 = 25 * 1024 * 1024
	AcceptedNoteMimeType       = "application/pdf"
	NoteFileExtension          = ".pdf"

	// ProgressInterval is the minimum gap between two delivered progress updates.
	ProgressInterval = 500 * time.Millisecond
	// UploadPartSize is the smallest multipart part S3 and MinIO accept.
	UploadPartSize = 5 * 1024 * 1024

	// PdfObjectsPerTick bounds how many pages are re-encoded between context checks.
	PdfObjectsPerTick = 50

	NoteObjectPrefix = "notes"
	PreviewMaxLength = 800
)

const (
	MessageFileTooLarge   = "File size must be less than 25MB"
	MessageOnlyPdfAllowed = "Only PDF files are allowed"
	MessageUploadFailed   = "Failed to upload file. Please try again."
)
