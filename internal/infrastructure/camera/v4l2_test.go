//go:build linux && !gocv
// +build linux,!gocv

package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"testing"

	"github.com/blackjack/webcam"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"posture-monitor/internal/domain/entity"
)

type fakeReader struct {
	waits  []error
	frames [][]byte
	closed bool
}

func (f *fakeReader) WaitForFrame(timeout uint32) error {
	if len(f.waits) == 0 {
		return nil
	}
	err := f.waits[0]
	f.waits = f.waits[1:]
	return err
}

func (f *fakeReader) ReadFrame() ([]byte, error) {
	if len(f.frames) == 0 {
		return nil, errors.New("device gone")
	}
	data := f.frames[0]
	f.frames = f.frames[1:]
	return data, nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func jpegBytes(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestV4L2Source_SkipsTimeoutsAndCorruptFrames(t *testing.T) {
	reader := &fakeReader{
		waits:  []error{&webcam.Timeout{}, nil, nil, nil},
		frames: [][]byte{{}, []byte("garbage"), jpegBytes(t, 32, 24)},
	}
	src := newV4L2Source("/dev/video0", reader, testLogger())

	frame, err := src.Read(context.Background())
	require.NoError(t, err)
	w, h := frame.Size()
	require.Equal(t, 32, w)
	require.Equal(t, 24, h)

	require.NoError(t, src.Close())
	require.True(t, reader.closed)
}

func TestV4L2Source_ReadFailureClosesSource(t *testing.T) {
	src := newV4L2Source("/dev/video0", &fakeReader{}, testLogger())

	_, err := src.Read(context.Background())
	require.ErrorIs(t, err, entity.ErrSourceClosed)
}

func TestV4L2Source_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := newV4L2Source("/dev/video0", &fakeReader{}, testLogger())
	_, err := src.Read(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDevicePath(t *testing.T) {
	require.Equal(t, "/dev/video0", devicePath("0"))
	require.Equal(t, "/dev/video2", devicePath("2"))
	require.Equal(t, "/dev/v4l/by-id/usb-cam", devicePath("/dev/v4l/by-id/usb-cam"))
}
