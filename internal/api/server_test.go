package api

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/infrastructure/storage"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestServer_IndexEmbedsFeed(t *testing.T) {
	srv := NewServer(":0", storage.NewMemorySnapshotRepository(), nil, quietLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `src="/video_feed"`)
}

func TestServer_StatusWithoutFrames(t *testing.T) {
	srv := NewServer(":0", storage.NewMemorySnapshotRepository(), nil, quietLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_StatusReportsLatest(t *testing.T) {
	repo := storage.NewMemorySnapshotRepository()
	require.NoError(t, repo.Save(context.Background(), &entity.Snapshot{
		JPEG:         []byte{0xff, 0xd8},
		ImageWidth:   640,
		ImageHeight:  480,
		FaceDetected: true,
		Alerts:       []entity.Alert{entity.AlertMoveBack},
	}))
	srv := NewServer(":0", repo, nil, quietLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, uint64(1), body.Sequence)
	require.True(t, body.FaceDetected)
	require.Equal(t, []string{"Move back from camera"}, body.Alerts)
	require.Equal(t, 640, body.Width)
}

func TestServer_MetricsOptional(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("posture_frames_total 1\n"))
	})

	withMetrics := NewServer(":0", storage.NewMemorySnapshotRepository(), metrics, quietLogger())
	rec := httptest.NewRecorder()
	withMetrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "posture_frames_total")

	without := NewServer(":0", storage.NewMemorySnapshotRepository(), nil, quietLogger())
	rec = httptest.NewRecorder()
	without.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_VideoFeedStreamsParts(t *testing.T) {
	repo := storage.NewMemorySnapshotRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &entity.Snapshot{JPEG: []byte("first")}))

	ts := httptest.NewServer(NewServer(":0", repo, nil, quietLogger()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/video_feed")
	require.NoError(t, err)
	defer resp.Body.Close()

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/x-mixed-replace", mediaType)
	require.Equal(t, "frame", params["boundary"])

	reader := multipart.NewReader(resp.Body, params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))

	// Часть заканчивается только на следующей границе
	require.Eventually(t, func() bool { return repo.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, repo.Save(ctx, &entity.Snapshot{JPEG: []byte("second")}))

	data, err := io.ReadAll(part)
	require.NoError(t, err)
	require.Equal(t, "first", string(data))

	part, err = reader.NextPart()
	require.NoError(t, err)
	buf := make([]byte, len("second"))
	_, err = io.ReadFull(part, buf)
	require.NoError(t, err)
	require.Equal(t, "second", string(buf))
}

func TestServer_RunShutsDownOnCancel(t *testing.T) {
	srv := NewServer("127.0.0.1:0", storage.NewMemorySnapshotRepository(), nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, func(addr net.Addr) { addrCh <- addr })
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
