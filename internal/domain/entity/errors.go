package entity

import "github.com/pkg/errors"

var (
	// ErrInvalidFrame кадр пустой или имеет нулевую площадь
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrStopRequested пользователь закрыл окно просмотра
	ErrStopRequested = errors.New("stop requested")

	// ErrSourceClosed источник кадров закрыт или исчерпан
	ErrSourceClosed = errors.New("frame source closed")

	// ErrNoSnapshot ещё не опубликован ни один кадр
	ErrNoSnapshot = errors.New("no snapshot available")
)
