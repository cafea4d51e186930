package repository

import (
	"context"
	"studyshare-be/internal/entity"
	"studyshare-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNoteRepository is a mock implementation of INoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{}
}

func (m *MockNoteRepository) UsingTx(ctx context.Context, tx database.DatabaseQueryer) INoteRepository {
	return m
}

func (m *MockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) List(ctx context.Context, query string) ([]*entity.Note, error) {
	args := m.Called(ctx, query)
	notes, _ := args.Get(0).([]*entity.Note)
	return notes, args.Error(1)
}

func (m *MockNoteRepository) GetById(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	args := m.Called(ctx, id)
	note, _ := args.Get(0).(*entity.Note)
	return note, args.Error(1)
}

func (m *MockNoteRepository) UpdatePreview(ctx context.Context, id uuid.UUID, preview string) error {
	args := m.Called(ctx, id, preview)
	return args.Error(0)
}
