package garagestorages3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	status  int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, _ = io.Copy(io.Discard, r.Body)

	if f.status != 0 {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
		return
	}

	switch r.Method {
	case http.MethodPut:
		f.puts = append(f.puts, r.URL.Path)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("%PDF-1.7 stored " + r.URL.Path))
	case http.MethodDelete:
		f.deletes = append(f.deletes, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestGarage(t *testing.T, srv *httptest.Server, publicBase string) *GarageS3 {
	t.Helper()
	g, err := NewGarageClient(Config{
		AccessKey:     "key",
		SecretKey:     "secret",
		Endpoint:      srv.URL,
		Region:        "garage",
		Bucket:        "studyshare",
		PublicBaseURL: publicBase,
	})
	require.NoError(t, err)
	return g
}

func TestUpload_PutsObjectAndReportsProgress(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	g := newTestGarage(t, srv, "")
	body := bytes.Repeat([]byte("a"), 4096)

	var last int64
	url, err := g.Upload(context.Background(), "notes/u1/abc.pdf", "application/pdf",
		bytes.NewReader(body), int64(len(body)),
		func(done, total int64) {
			assert.Equal(t, int64(len(body)), total)
			last = done
		})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(url, "/studyshare/notes/u1/abc.pdf"), url)
	assert.Equal(t, int64(len(body)), last)
	assert.Equal(t, []string{"/studyshare/notes/u1/abc.pdf"}, fake.puts)
}

func TestUpload_UsesPublicBaseURL(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{})
	defer srv.Close()

	g := newTestGarage(t, srv, "https://cdn.example.com/files/")

	url, err := g.Upload(context.Background(), "notes/u1/abc.pdf", "application/pdf",
		strings.NewReader("%PDF-1.4"), 8, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/files/notes/u1/abc.pdf", url)
}

func TestUpload_PropagatesStoreError(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{status: http.StatusForbidden})
	defer srv.Close()

	g := newTestGarage(t, srv, "")

	_, err := g.Upload(context.Background(), "notes/u1/abc.pdf", "application/pdf",
		strings.NewReader("%PDF-1.4"), 8, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes/u1/abc.pdf")
}

func TestDelete(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	g := newTestGarage(t, srv, "")
	require.NoError(t, g.Delete(context.Background(), "notes/u1/abc.pdf"))
	assert.Equal(t, []string{"/studyshare/notes/u1/abc.pdf"}, fake.deletes)
}

func TestObjectURL(t *testing.T) {
	g := &GarageS3{cfg: Config{Endpoint: "http://localhost:3900/", Bucket: "studyshare"}}

	url, err := g.ObjectURL("notes/u1/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3900/studyshare/notes/u1/x.pdf", url)
}

func TestNewGarage_EnforcesMinimumPartSize(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{})
	defer srv.Close()

	g := newTestGarage(t, srv, "")
	assert.GreaterOrEqual(t, g.cfg.PartSize, int64(5*1024*1024))
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{})
	defer srv.Close()

	g := newTestGarage(t, srv, "")
	body, err := g.Download(context.Background(), "notes/u1/a.pdf")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 stored /studyshare/notes/u1/a.pdf", string(data))
}

func TestDownload_Error(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{status: http.StatusForbidden})
	defer srv.Close()

	_, err := newTestGarage(t, srv, "").Download(context.Background(), "notes/u1/a.pdf")
	assert.ErrorContains(t, err, "failed to download")
}
