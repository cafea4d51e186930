package service

import (
	"fmt"
	"io"
	"studyshare-be/internal/constant"
	"studyshare-be/internal/dto"
	"studyshare-be/internal/pkg/serverutils"

	"github.com/gabriel-vasile/mimetype"
)

// NoteFile describes an uploaded file before any of its content is read.
type NoteFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type IFileValidatorService interface {
	ValidateFields(req *dto.UploadNoteRequest) error
	// ValidateFile checks the declared size and type only; it never opens the file.
	ValidateFile(file *NoteFile) error
	// ReadFile loads the content and rejects it if it does not sniff as a PDF.
	ReadFile(file *NoteFile) ([]byte, error)
}

type fileValidatorService struct {
	maxSize int64
}

func NewFileValidatorService() IFileValidatorService {
	return &fileValidatorService{maxSize: constant.MaxNoteFileSize}
}

func (v *fileValidatorService) ValidateFields(req *dto.UploadNoteRequest) error {
	return serverutils.ValidateRequest(req)
}

func (v *fileValidatorService) ValidateFile(file *NoteFile) error {
	if file == nil {
		return serverutils.NewValidationError("file", "file is required")
	}

	if file.Size > v.maxSize {
		return serverutils.NewValidationError("file", constant.MessageFileTooLarge)
	}

	if file.ContentType != constant.AcceptedNoteMimeType {
		return serverutils.NewValidationError("file", constant.MessageOnlyPdfAllowed)
	}

	return nil
}

func (v *fileValidatorService) ReadFile(file *NoteFile) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer rc.Close()

	// one extra byte tells us the declared size was a lie
	raw, err := io.ReadAll(io.LimitReader(rc, v.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(raw)) > v.maxSize {
		return nil, serverutils.NewValidationError("file", constant.MessageFileTooLarge)
	}

	if !mimetype.Detect(raw).Is(constant.AcceptedNoteMimeType) {
		return nil, serverutils.NewValidationError("file", constant.MessageOnlyPdfAllowed)
	}

	return raw, nil
}
