//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"posture-monitor/internal/domain/port"
)

// MatFrame кадр OpenCV в порядке каналов BGR.
type MatFrame struct {
	mat gocv.Mat
}

// NewMatFrame забирает владение матрицей.
func NewMatFrame(mat gocv.Mat) *MatFrame {
	return &MatFrame{mat: mat}
}

// Mat возвращает матрицу кадра для окна и кодировщика.
func (f *MatFrame) Mat() *gocv.Mat {
	return &f.mat
}

// Size возвращает ширину и высоту кадра
func (f *MatFrame) Size() (width, height int) {
	if f.mat.Empty() {
		return 0, 0
	}
	return f.mat.Cols(), f.mat.Rows()
}

// Grayscale переводит кадр в оттенки серого
func (f *MatFrame) Grayscale() (port.GrayImage, error) {
	gray := gocv.NewMat()
	gocv.CvtColor(f.mat, &gray, gocv.ColorBGRToGray)
	return &MatGray{mat: gray}, nil
}

// Image конвертирует матрицу в image.Image
func (f *MatFrame) Image() (image.Image, error) {
	return f.mat.ToImage()
}

// Close освобождает матрицу
func (f *MatFrame) Close() error {
	return f.mat.Close()
}

func (f *MatFrame) Rectangle(r image.Rectangle, c color.RGBA, thickness int) {
	gocv.Rectangle(&f.mat, r, c, thickness)
}

func (f *MatFrame) Circle(center image.Point, radius int, c color.RGBA, thickness int) {
	gocv.Circle(&f.mat, center, radius, c, thickness)
}

func (f *MatFrame) Text(text string, origin image.Point, scale float64, c color.RGBA, thickness int) {
	gocv.PutText(&f.mat, text, origin, gocv.FontHersheySimplex, scale, c, thickness)
}

// MatGray одноканальная матрица для каскада
type MatGray struct {
	mat gocv.Mat
}

func (g *MatGray) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.mat.Cols(), g.mat.Rows())
}

func (g *MatGray) Close() error {
	return g.mat.Close()
}

var (
	_ port.Frame     = (*MatFrame)(nil)
	_ port.GrayImage = (*MatGray)(nil)
)
