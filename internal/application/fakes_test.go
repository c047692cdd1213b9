package app

import (
	"context"
	"image"
	"sync"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
	"posture-monitor/internal/infrastructure/vision"
)

type fakeDetector struct {
	mu     sync.Mutex
	faces  []entity.BoundingBox
	err    error
	calls  int
	params entity.DetectParams
	bounds image.Rectangle
}

func (d *fakeDetector) Detect(ctx context.Context, gray port.GrayImage, params entity.DetectParams) ([]entity.BoundingBox, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	d.params = params
	d.bounds = gray.Bounds()
	if d.err != nil {
		return nil, d.err
	}
	return d.faces, nil
}

func (d *fakeDetector) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// fakeSource отдаёт заранее подготовленные кадры, затем ErrSourceClosed.
type fakeSource struct {
	frames []port.Frame
	closed bool
}

func (s *fakeSource) Read(ctx context.Context) (port.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.frames) == 0 {
		return nil, entity.ErrSourceClosed
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type published struct {
	alerts       []entity.Alert
	faceDetected bool
}

type fakeSink struct {
	published []published
	stopAfter int
	err       error
}

func (s *fakeSink) Publish(ctx context.Context, frame port.Frame, alerts []entity.Alert, faceDetected bool) error {
	s.published = append(s.published, published{alerts: alerts, faceDetected: faceDetected})
	if s.stopAfter > 0 && len(s.published) >= s.stopAfter {
		return entity.ErrStopRequested
	}
	return s.err
}

type fakeNotifier struct {
	mu       sync.Mutex
	name     string
	received [][]entity.Alert
	err      error
}

func (n *fakeNotifier) Name() string {
	return n.name
}

func (n *fakeNotifier) Notify(ctx context.Context, alerts []entity.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, alerts)
	return n.err
}

func (n *fakeNotifier) Received() [][]entity.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([][]entity.Alert(nil), n.received...)
}

// closeCountingFrame считает вызовы Close поверх кадра на чистом Go.
type closeCountingFrame struct {
	*vision.ImageFrame
	closed int
}

func (f *closeCountingFrame) Close() error {
	f.closed++
	return nil
}

func newFrame(width, height int) *vision.ImageFrame {
	return vision.NewImageFrame(image.NewRGBA(image.Rect(0, 0, width, height)))
}
