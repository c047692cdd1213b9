package entity

import "time"

// Snapshot хранит последний опубликованный кадр с разметкой.
type Snapshot struct {
	Sequence     uint64    // порядковый номер кадра
	JPEG         []byte    // кадр с разметкой в формате JPEG
	ImageWidth   int       // ширина изображения
	ImageHeight  int       // высота изображения
	FaceDetected bool      // флаг наличия лица в кадре
	Alerts       []Alert   // предупреждения для кадра
	CapturedAt   time.Time // время публикации
}

// HasAlerts сообщает, есть ли предупреждения в кадре
func (s *Snapshot) HasAlerts() bool {
	return len(s.Alerts) > 0
}
