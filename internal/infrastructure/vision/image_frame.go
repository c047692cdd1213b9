package vision

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"posture-monitor/internal/domain/port"
)

// hersheyHeight примерная высота строки шрифта Hershey Simplex при scale = 1.
const hersheyHeight = 22

// ImageFrame кадр на чистом Go поверх *image.RGBA.
// Используется без OpenCV и в тестах.
type ImageFrame struct {
	img *image.RGBA
}

// NewImageFrame оборачивает готовый RGBA-буфер без копирования.
func NewImageFrame(img *image.RGBA) *ImageFrame {
	return &ImageFrame{img: img}
}

// ImageFrameFrom копирует произвольное изображение в RGBA-кадр.
func ImageFrameFrom(src image.Image) *ImageFrame {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &ImageFrame{img: img}
}

// RGBA возвращает буфер кадра
func (f *ImageFrame) RGBA() *image.RGBA {
	return f.img
}

// Size возвращает ширину и высоту кадра
func (f *ImageFrame) Size() (width, height int) {
	if f.img == nil {
		return 0, 0
	}
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

// Grayscale переводит кадр в оттенки серого
func (f *ImageFrame) Grayscale() (port.GrayImage, error) {
	gray := image.NewGray(f.img.Bounds())
	draw.Draw(gray, gray.Bounds(), f.img, f.img.Bounds().Min, draw.Src)
	return &ImageGray{Gray: gray}, nil
}

// Image возвращает кадр для кодировщиков
func (f *ImageFrame) Image() (image.Image, error) {
	return f.img, nil
}

// Close ничего не освобождает: буфер принадлежит сборщику мусора
func (f *ImageFrame) Close() error {
	return nil
}

// Rectangle рисует контур; правая нижняя точка включается, как в OpenCV
func (f *ImageFrame) Rectangle(r image.Rectangle, c color.RGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	half := thickness / 2
	for k := 0; k < thickness; k++ {
		d := k - half
		for x := r.Min.X - half; x <= r.Max.X+half; x++ {
			f.img.SetRGBA(x, r.Min.Y+d, c)
			f.img.SetRGBA(x, r.Max.Y+d, c)
		}
		for y := r.Min.Y - half; y <= r.Max.Y+half; y++ {
			f.img.SetRGBA(r.Min.X+d, y, c)
			f.img.SetRGBA(r.Max.X+d, y, c)
		}
	}
}

// Circle рисует окружность или круг при thickness < 0
func (f *ImageFrame) Circle(center image.Point, radius int, c color.RGBA, thickness int) {
	outer := radius
	inner := -1
	if thickness > 0 {
		outer = radius + thickness/2
		inner = radius - (thickness+1)/2
	}
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > outer*outer || (inner >= 0 && d2 <= inner*inner) {
				continue
			}
			f.img.SetRGBA(center.X+dx, center.Y+dy, c)
		}
	}
}

// Text выводит строку растровым шрифтом, масштабированным под scale.
// Толщина штриха у растрового шрифта не меняется.
func (f *ImageFrame) Text(text string, origin image.Point, scale float64, c color.RGBA, _ int) {
	if text == "" || scale <= 0 {
		return
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := metrics.Height.Ceil()
	width := font.MeasureString(face, text).Ceil()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	factor := scale * hersheyHeight / float64(height)
	dst := image.Rect(
		origin.X,
		origin.Y-int(float64(ascent)*factor),
		origin.X+int(float64(width)*factor),
		origin.Y+int(float64(height-ascent)*factor),
	)
	if dst.Empty() {
		return
	}

	scaled := image.NewAlpha(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), xdraw.Src, nil)
	draw.DrawMask(f.img, dst, image.NewUniform(c), image.Point{}, scaled, image.Point{}, draw.Over)
}

// ImageGray одноканальное изображение на чистом Go
type ImageGray struct {
	*image.Gray
}

// Close ничего не освобождает
func (g *ImageGray) Close() error {
	return nil
}

var (
	_ port.Frame     = (*ImageFrame)(nil)
	_ port.GrayImage = (*ImageGray)(nil)
)
