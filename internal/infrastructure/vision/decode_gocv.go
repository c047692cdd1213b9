//go:build gocv
// +build gocv

package vision

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"posture-monitor/internal/domain/port"
)

// DecodeFrame превращает байты JPEG в кадр OpenCV.
func DecodeFrame(data []byte) (port.Frame, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return NewMatFrame(mat), nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return nil, errors.New("failed to decode image")
}
