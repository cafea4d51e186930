package service

import (
	"testing"
	"time"

	"studyshare-be/internal/entity"
	"studyshare-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(retention time.Duration) (*uploadTrackerService, *fakeClock) {
	clock := newFakeClock()
	tracker := NewUploadTrackerService(retention).(*uploadTrackerService)
	tracker.now = clock.Now
	return tracker, clock
}

func TestUploadTracker_Lifecycle(t *testing.T) {
	tracker, _ := newTestTracker(time.Minute)
	id := uuid.New()
	noteId := uuid.New()

	require.NoError(t, tracker.Begin("u1", id))

	s, err := tracker.Get("u1", id)
	require.NoError(t, err)
	assert.Equal(t, entity.UploadStateValidating, s.State)

	tracker.Advance(id, entity.UploadStateUploading)
	tracker.Progress(id, 30)
	tracker.Progress(id, 20)

	s, err = tracker.Get("u1", id)
	require.NoError(t, err)
	assert.Equal(t, entity.UploadStateUploading, s.State)
	assert.Equal(t, 30, s.Progress)

	tracker.Finish(id, noteId)

	s, err = tracker.Get("u1", id)
	require.NoError(t, err)
	assert.Equal(t, entity.UploadStateDone, s.State)
	assert.Equal(t, 100, s.Progress)
	assert.Equal(t, noteId, *s.NoteId)
}

func TestUploadTracker_OneActivePerOwner(t *testing.T) {
	tracker, _ := newTestTracker(time.Minute)
	first := uuid.New()

	require.NoError(t, tracker.Begin("u1", first))
	assert.ErrorIs(t, tracker.Begin("u1", uuid.New()), serverutils.ErrUploadInProgress)
	assert.NoError(t, tracker.Begin("u2", uuid.New()))

	tracker.Fail(first, "boom")
	assert.NoError(t, tracker.Begin("u1", uuid.New()))
}

func TestUploadTracker_RejectAndFail(t *testing.T) {
	tracker, _ := newTestTracker(time.Minute)
	rejected, failed := uuid.New(), uuid.New()

	require.NoError(t, tracker.Begin("u1", rejected))
	tracker.Reject(rejected, "Only PDF files are allowed")

	require.NoError(t, tracker.Begin("u1", failed))
	tracker.Progress(failed, 60)
	tracker.Fail(failed, "Failed to upload file. Please try again.")

	s, err := tracker.Get("u1", rejected)
	require.NoError(t, err)
	assert.Equal(t, entity.UploadStateRejected, s.State)
	assert.Equal(t, "Only PDF files are allowed", s.Error)

	s, err = tracker.Get("u1", failed)
	require.NoError(t, err)
	assert.Equal(t, entity.UploadStateIdle, s.State)
	assert.Zero(t, s.Progress)
}

func TestUploadTracker_ForeignIdIsNotVisible(t *testing.T) {
	tracker, _ := newTestTracker(time.Minute)
	id := uuid.New()

	require.NoError(t, tracker.Begin("u1", id))
	tracker.Finish(id, uuid.New())

	_, err := tracker.Get("u2", id)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
	assert.ErrorIs(t, tracker.Begin("u2", id), serverutils.ErrBadRequest)
}

func TestUploadTracker_SweepsFinishedSessions(t *testing.T) {
	tracker, clock := newTestTracker(time.Minute)
	done, active := uuid.New(), uuid.New()

	require.NoError(t, tracker.Begin("u1", done))
	tracker.Finish(done, uuid.New())
	require.NoError(t, tracker.Begin("u2", active))

	clock.Advance(2 * time.Minute)

	_, err := tracker.Get("u1", done)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	s, err := tracker.Get("u2", active)
	require.NoError(t, err)
	assert.True(t, s.State.Active())
}

func TestUploadTracker_UnknownIdIsIgnored(t *testing.T) {
	tracker, _ := newTestTracker(time.Minute)

	assert.NotPanics(t, func() {
		tracker.Progress(uuid.New(), 50)
		tracker.Finish(uuid.New(), uuid.New())
	})
}
