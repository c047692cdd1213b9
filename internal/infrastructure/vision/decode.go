//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"image/jpeg"

	"github.com/pkg/errors"

	"posture-monitor/internal/domain/port"
)

// DecodeFrame превращает байты JPEG в кадр на чистом Go.
func DecodeFrame(data []byte) (port.Frame, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	return ImageFrameFrom(img), nil
}
