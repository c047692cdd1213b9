package port

import (
	"image"
	"image/color"
)

// GrayImage одноканальная производная кадра для детектора
type GrayImage interface {
	Bounds() image.Rectangle
	Close() error
}

// Annotator примитивы рисования поверх кадра
type Annotator interface {
	// Rectangle рисует контур прямоугольника
	Rectangle(r image.Rectangle, c color.RGBA, thickness int)
	// Circle рисует окружность; thickness < 0 означает заливку
	Circle(center image.Point, radius int, c color.RGBA, thickness int)
	// Text выводит строку; origin это левая нижняя точка текста
	Text(text string, origin image.Point, scale float64, c color.RGBA, thickness int)
}

// Frame цветной кадр с камеры. Кадр изменяется на месте при разметке.
type Frame interface {
	Annotator

	// Size возвращает ширину и высоту кадра
	Size() (width, height int)
	// Grayscale создаёт одноканальную копию; вызывающий закрывает её
	Grayscale() (GrayImage, error)
	// Image возвращает кадр как image.Image для кодировщиков
	Image() (image.Image, error)
	// Close освобождает ресурсы кадра
	Close() error
}
