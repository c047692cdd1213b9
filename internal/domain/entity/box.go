package entity

import "image"

// BoundingBox прямоугольник найденного лица в координатах кадра
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// BoxFromRect строит BoundingBox из image.Rectangle
func BoxFromRect(r image.Rectangle) BoundingBox {
	return BoundingBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect возвращает прямоугольник для отрисовки
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Center возвращает координаты центра области (целочисленное деление)
func (b BoundingBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Area возвращает площадь области в пикселях
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// AspectRatio возвращает отношение ширины к высоте.
// ok == false, если высота не положительная.
func (b BoundingBox) AspectRatio() (ratio float64, ok bool) {
	if b.Height <= 0 {
		return 0, false
	}
	return float64(b.Width) / float64(b.Height), true
}
