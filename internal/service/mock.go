package service

import (
	"context"
	"io"
	"studyshare-be/internal/dto"
	"studyshare-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{}
}

func (m *MockObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64, onProgress func(transferred, total int64)) (string, error) {
	args := m.Called(ctx, key, contentType, body, size, onProgress)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockPublisherService is a mock implementation of IPublisherService
type MockPublisherService struct {
	mock.Mock
}

func NewMockPublisherService() *MockPublisherService {
	return &MockPublisherService{}
}

func (m *MockPublisherService) Publish(ctx context.Context, payload []byte) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockUploadService is a mock implementation of IUploadService
type MockUploadService struct {
	mock.Mock
}

func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) Submit(ctx context.Context, in *UploadNoteInput) (*dto.UploadNoteResponse, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*dto.UploadNoteResponse)
	return res, args.Error(1)
}

func (m *MockUploadService) Progress(ctx context.Context, owner string, uploadId uuid.UUID) (*dto.UploadProgressResponse, error) {
	args := m.Called(ctx, owner, uploadId)
	res, _ := args.Get(0).(*dto.UploadProgressResponse)
	return res, args.Error(1)
}

// MockNoteService is a mock implementation of INoteService
type MockNoteService struct {
	mock.Mock
}

func NewMockNoteService() *MockNoteService {
	return &MockNoteService{}
}

func (m *MockNoteService) List(ctx context.Context, req *dto.ListNoteRequest) ([]*dto.ShowNoteResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).([]*dto.ShowNoteResponse)
	return res, args.Error(1)
}

func (m *MockNoteService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.ShowNoteResponse)
	return res, args.Error(1)
}

// MockAuthService is a mock implementation of IAuthService
type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.SessionResponse)
	return res, args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.SessionResponse)
	return res, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	res, _ := args.Get(0).(*entity.Session)
	return res, args.Error(1)
}
