package miniostorage

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
	"go.uber.org/zap"
)

type fakeMinio struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
}

func (f *fakeMinio) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, _ = io.Copy(io.Discard, r.Body)

	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		f.puts = append(f.puts, r.URL.Path)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		f.deletes = append(f.deletes, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestMinio(t *testing.T, fake *fakeMinio) (*MinioStorage, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	m, err := NewMinioStorage(context.Background(), Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "studyshare",
		Region:    "us-east-1",
		PartSize:  5 * 1024 * 1024,
	}, zap.NewNop())
	require.NoError(t, err)
	return m, srv
}

func TestUpload_ReportsProgressAndReturnsURL(t *testing.T) {
	fake := &fakeMinio{}
	m, srv := newTestMinio(t, fake)
	body := bytes.Repeat([]byte("p"), 2048)

	var last int64
	url, err := m.Upload(context.Background(), "notes/u1/a.pdf", "application/pdf",
		bytes.NewReader(body), int64(len(body)),
		func(transferred, total int64) {
			assert.Equal(t, int64(len(body)), total)
			last = transferred
		})
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/studyshare/notes/u1/a.pdf", url)
	assert.Equal(t, int64(len(body)), last)
	assert.Equal(t, []string{"/studyshare/notes/u1/a.pdf"}, fake.puts)
}

func TestDelete(t *testing.T) {
	fake := &fakeMinio{}
	m, _ := newTestMinio(t, fake)

	require.NoError(t, m.Delete(context.Background(), "notes/u1/a.pdf"))
	assert.Equal(t, []string{"/studyshare/notes/u1/a.pdf"}, fake.deletes)
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		public bool
		want   string
	}{
		{"endpoint", "http://localhost:9000", false, "http://localhost:9000/studyshare/notes/u1/a.pdf"},
		{"endpoint trailing slash", "http://localhost:9000/", false, "http://localhost:9000/studyshare/notes/u1/a.pdf"},
		{"public base", "https://files.example.com/", true, "https://files.example.com/notes/u1/a.pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := objectURL(tc.base, "studyshare", "notes/u1/a.pdf", tc.public)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestObjectURL_InvalidBase(t *testing.T) {
	_, err := objectURL("://bad", "b", "k", false)
	assert.Error(t, err)
}
