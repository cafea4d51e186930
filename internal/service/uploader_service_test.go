package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyshare-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploaderService_ThrottlesProgress(t *testing.T) {
	store := NewMockObjectStore()
	clock := newFakeClock()
	u := &uploaderService{store: store, interval: 500 * time.Millisecond, now: clock.Now}

	store.On("Upload", mock.Anything, "notes/u1/a.pdf", "application/pdf", mock.Anything, int64(1000), mock.Anything).
		Run(func(args mock.Arguments) {
			report := args.Get(5).(func(int64, int64))
			report(100, 1000) // first update always goes out
			clock.Advance(100 * time.Millisecond)
			report(300, 1000) // inside the window
			clock.Advance(500 * time.Millisecond)
			report(600, 1000)
			clock.Advance(100 * time.Millisecond)
			report(1000, 1000) // dropped, 100% is not guaranteed
		}).
		Return("https://store.example/notes/u1/a.pdf", nil).Once()

	var got []int
	url, err := u.Upload(context.Background(), "notes/u1/a.pdf", make([]byte, 1000), func(p int) {
		got = append(got, p)
	})

	require.NoError(t, err)
	assert.Equal(t, "https://store.example/notes/u1/a.pdf", url)
	assert.Equal(t, []int{10, 60}, got)
	store.AssertExpectations(t)
}

func TestUploaderService_WrapsStoreError(t *testing.T) {
	store := NewMockObjectStore()
	cause := errors.New("403 forbidden")
	store.On("Upload", anyUpload()...).Return("", cause).Once()

	_, err := NewUploaderService(store).Upload(context.Background(), "k", []byte("x"), nil)

	var te *serverutils.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, cause)
}

func TestUploaderService_EmptyUrlIsAFailure(t *testing.T) {
	store := NewMockObjectStore()
	store.On("Upload", anyUpload()...).Return("", nil).Once()

	_, err := NewUploaderService(store).Upload(context.Background(), "k", []byte("x"), nil)

	var te *serverutils.TransportError
	assert.ErrorAs(t, err, &te)
}
