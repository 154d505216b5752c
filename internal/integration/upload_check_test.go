package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/synthmod_backend/internal/app/ingesthttp"
	"github.com/sir_venger/synthmod_backend/internal/usecase/recordsvc"
	"github.com/sir_venger/synthmod_backend/pkg/ingestclient"
	"github.com/sir_venger/synthmod_backend/pkg/ingestproto"
)

// newTLSBackend поднимает сервис за TLS; now задаёт серверное время приёма.
func newTLSBackend(t *testing.T, dir string, now func() time.Time) (*httptest.Server, ingestclient.Client) {
	t.Helper()

	records := recordsvc.New(recordsvc.Deps{
		DataDir: dir,
		Logger:  log.NewNopLogger(),
		Metrics: recordsvc.NewMetrics(prometheus.NewRegistry()),
	})
	h := ingesthttp.New(ingesthttp.Deps{
		Records: records,
		Logger:  log.NewNopLogger(),
		Now:     now,
	})

	s := httptest.NewTLSServer(h)
	t.Cleanup(s.Close)

	return s, ingestclient.New(s.Client())
}

func TestUploadAndCheckOverTLS(t *testing.T) {
	dir := t.TempDir()
	s, cli := newTLSBackend(t, dir, func() time.Time { return time.UnixMilli(1000) })
	ctx := context.Background()

	require.NoError(t, cli.Upload(ctx, s.URL, []byte(`{"userID":"alice"}`)))

	got, err := os.ReadFile(filepath.Join(dir, "1000-alice.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"userID":"alice"}`, string(got))

	code, err := cli.Check(ctx, s.URL, "1000-alice.json")
	require.NoError(t, err)
	assert.Equal(t, ingestproto.CheckFound, code)

	code, err = cli.Check(ctx, s.URL, "bob")
	require.NoError(t, err)
	assert.Equal(t, ingestproto.CheckNotFound, code)
}

func TestPreflightOverTLS(t *testing.T) {
	s, _ := newTLSBackend(t, t.TempDir(), nil)

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/upload", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "10", resp.Header.Get("Access-Control-Max-Age"))
}

func TestConcurrentUploads_DistinctFiles(t *testing.T) {
	dir := t.TempDir()
	var clock atomic.Int64
	s, cli := newTLSBackend(t, dir, func() time.Time { return time.UnixMilli(clock.Add(1)) })

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- cli.Upload(context.Background(), s.URL, []byte(fmt.Sprintf(`{"userID":"user%d"}`, i)))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func TestStorageFailureOverTLS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.Mkdir(dir, 0o755))
	s, cli := newTLSBackend(t, dir, nil)
	require.NoError(t, os.RemoveAll(dir))

	err := cli.Upload(context.Background(), s.URL, []byte(`{"userID":"alice"}`))
	var se *ingestclient.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)

	code, err := cli.Check(context.Background(), s.URL, "alice")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, ingestproto.CheckError, code)
}

func TestCheck_IDWithSpaceIsRejectedByClient(t *testing.T) {
	dir := t.TempDir()
	s, cli := newTLSBackend(t, dir, func() time.Time { return time.UnixMilli(1000) })
	ctx := context.Background()

	require.NoError(t, cli.Upload(ctx, s.URL, []byte(`{"userID":"a b"}`)))
	_, err := os.Stat(filepath.Join(dir, "1000-a b.json"))
	require.NoError(t, err)

	code, err := cli.Check(ctx, s.URL, "1000-a b.json")
	require.ErrorIs(t, err, ingestclient.ErrUnencodableID)
	assert.Equal(t, ingestproto.CheckError, code)
}
