package service

import (
	"context"
	"studyshare-be/internal/entity"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/internal/repository"

	"github.com/google/uuid"
)

type RecordNoteInput struct {
	Title       string
	Subject     string
	Description string
	Owner       string
	File        entity.FileRef
}

type IRecorderService interface {
	Record(ctx context.Context, in *RecordNoteInput) (*entity.Note, error)
}

type recorderService struct {
	noteRepository repository.INoteRepository
}

func NewRecorderService(noteRepository repository.INoteRepository) IRecorderService {
	return &recorderService{noteRepository: noteRepository}
}

// Record writes a fresh note with zero downloads and rating. The upload
// timestamp comes from the database.
func (s *recorderService) Record(ctx context.Context, in *RecordNoteInput) (*entity.Note, error) {
	note := &entity.Note{
		Id:          uuid.New(),
		Title:       in.Title,
		Subject:     in.Subject,
		Description: in.Description,
		File:        in.File,
		UploadedBy:  in.Owner,
		Downloads:   0,
		Rating:      0,
	}

	if err := s.noteRepository.Create(ctx, note); err != nil {
		return nil, &serverutils.WriteError{Err: err}
	}

	return note, nil
}
