package service

import (
	"bytes"
	"context"
	"errors"
	"math"
	"studyshare-be/internal/constant"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/pkg/progress"
	"time"
)

type IUploaderService interface {
	// Upload sends content to key and returns its retrieval URL. onProgress
	// receives whole percentages, throttled and never decreasing.
	Upload(ctx context.Context, key string, content []byte, onProgress func(percent int)) (string, error)
}

type uploaderService struct {
	store    ObjectStore
	interval time.Duration
	now      func() time.Time
}

func NewUploaderService(store ObjectStore) IUploaderService {
	return &uploaderService{
		store:    store,
		interval: constant.ProgressInterval,
		now:      time.Now,
	}
}

func (u *uploaderService) Upload(ctx context.Context, key string, content []byte, onProgress func(percent int)) (string, error) {
	var report func(float64)
	if onProgress != nil {
		report = func(pct float64) { onProgress(int(math.Round(pct))) }
	}
	throttle := progress.NewThrottle(u.interval, report, progress.WithClock(u.now))

	url, err := u.store.Upload(
		ctx,
		key,
		constant.AcceptedNoteMimeType,
		bytes.NewReader(content),
		int64(len(content)),
		throttle.Report,
	)
	if err != nil {
		return "", &serverutils.TransportError{Err: err}
	}
	if url == "" {
		return "", &serverutils.TransportError{Err: errors.New("object store returned an empty url")}
	}

	return url, nil
}
