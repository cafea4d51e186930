package service

import (
	"studyshare-be/internal/entity"
	"studyshare-be/internal/pkg/serverutils"
	"sync"
	"time"

	"github.com/google/uuid"
)

type IUploadTrackerService interface {
	Begin(owner string, id uuid.UUID) error
	Advance(id uuid.UUID, state entity.UploadState)
	Progress(id uuid.UUID, percent int)
	Reject(id uuid.UUID, message string)
	Fail(id uuid.UUID, message string)
	Finish(id uuid.UUID, noteId uuid.UUID)
	Get(owner string, id uuid.UUID) (*entity.UploadSession, error)
}

type uploadTrackerService struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*entity.UploadSession
	retention time.Duration
	now       func() time.Time
}

func NewUploadTrackerService(retention time.Duration) IUploadTrackerService {
	return &uploadTrackerService{
		sessions:  make(map[uuid.UUID]*entity.UploadSession),
		retention: retention,
		now:       time.Now,
	}
}

// Begin opens a session for owner. An owner may only run one upload at a time.
func (t *uploadTrackerService) Begin(owner string, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweep(now)

	for _, s := range t.sessions {
		if s.Owner == owner && s.State.Active() {
			return serverutils.ErrUploadInProgress
		}
	}

	if existing, ok := t.sessions[id]; ok && existing.Owner != owner {
		return serverutils.ErrBadRequest
	}

	t.sessions[id] = &entity.UploadSession{
		Id:        id,
		Owner:     owner,
		State:     entity.UploadStateValidating,
		StartedAt: now,
		UpdatedAt: now,
	}

	return nil
}

func (t *uploadTrackerService) Advance(id uuid.UUID, state entity.UploadState) {
	t.update(id, func(s *entity.UploadSession) {
		s.State = state
	})
}

func (t *uploadTrackerService) Progress(id uuid.UUID, percent int) {
	t.update(id, func(s *entity.UploadSession) {
		if percent > 100 {
			percent = 100
		}
		if percent > s.Progress {
			s.Progress = percent
		}
	})
}

func (t *uploadTrackerService) Reject(id uuid.UUID, message string) {
	t.update(id, func(s *entity.UploadSession) {
		s.State = entity.UploadStateRejected
		s.Error = message
	})
}

// Fail returns the session to idle with a message for the user.
func (t *uploadTrackerService) Fail(id uuid.UUID, message string) {
	t.update(id, func(s *entity.UploadSession) {
		s.State = entity.UploadStateIdle
		s.Progress = 0
		s.Error = message
	})
}

func (t *uploadTrackerService) Finish(id uuid.UUID, noteId uuid.UUID) {
	t.update(id, func(s *entity.UploadSession) {
		s.State = entity.UploadStateDone
		s.Progress = 100
		s.Error = ""
		s.NoteId = &noteId
	})
}

func (t *uploadTrackerService) Get(owner string, id uuid.UUID) (*entity.UploadSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sweep(t.now())

	s, ok := t.sessions[id]
	if !ok || s.Owner != owner {
		return nil, serverutils.ErrNotFound
	}

	snapshot := *s
	return &snapshot, nil
}

func (t *uploadTrackerService) update(id uuid.UUID, fn func(s *entity.UploadSession)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[id]
	if !ok {
		return
	}
	fn(s)
	s.UpdatedAt = t.now()
}

// sweep drops finished sessions nobody polled within the retention window.
// Callers hold t.mu.
func (t *uploadTrackerService) sweep(now time.Time) {
	if t.retention <= 0 {
		return
	}
	for id, s := range t.sessions {
		if !s.State.Active() && now.Sub(s.UpdatedAt) > t.retention {
			delete(t.sessions, id)
		}
	}
}
