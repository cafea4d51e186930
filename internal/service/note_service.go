package service

import (
	"context"
	"studyshare-be/internal/dto"
	"studyshare-be/internal/entity"
	"studyshare-be/internal/repository"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, req *dto.ListNoteRequest) ([]*dto.ShowNoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error)
}

type noteService struct {
	noteRepository repository.INoteRepository
}

func NewNoteService(noteRepository repository.INoteRepository) INoteService {
	return &noteService{noteRepository: noteRepository}
}

// List returns notes newest first, optionally filtered by q.
func (c *noteService) List(ctx context.Context, req *dto.ListNoteRequest) ([]*dto.ShowNoteResponse, error) {
	notes, err := c.noteRepository.List(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowNoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toShowNoteResponse(n))
	}

	return res, nil
}

func (c *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	note, err := c.noteRepository.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	return toShowNoteResponse(note), nil
}

func toShowNoteResponse(n *entity.Note) *dto.ShowNoteResponse {
	return &dto.ShowNoteResponse{
		Id:          n.Id,
		Title:       n.Title,
		Subject:     n.Subject,
		Description: n.Description,
		FileUrl:     n.File.Url,
		FileName:    n.File.Name,
		FileSize:    n.File.Size,
		FileType:    n.File.ContentType,
		UploadedBy:  n.UploadedBy,
		UploadedAt:  n.UploadedAt,
		Downloads:   n.Downloads,
		Rating:      n.Rating,
		Preview:     n.Preview,
	}
}
