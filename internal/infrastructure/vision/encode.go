package vision

import (
	"bytes"
	"image/jpeg"

	"github.com/pkg/errors"

	"posture-monitor/internal/domain/port"
)

// EncodeJPEG кодирует кадр в JPEG с заданным качеством.
func EncodeJPEG(frame port.Frame, quality int) ([]byte, error) {
	img, err := frame.Image()
	if err != nil {
		return nil, errors.Wrap(err, "frame to image")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}

	return buf.Bytes(), nil
}
