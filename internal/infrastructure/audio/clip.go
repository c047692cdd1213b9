package audio

import (
	"encoding/binary"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Clip звуковой фрагмент в формате signed 16-bit little-endian
type Clip struct {
	PCM        []byte
	Channels   int
	SampleRate int
}

// Duration длительность фрагмента в секундах
func (c Clip) Duration() float64 {
	if c.Channels == 0 || c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.PCM)/2/c.Channels) / float64(c.SampleRate)
}

// LoadClip читает WAV-файл целиком и переводит его в S16.
func LoadClip(path string) (Clip, error) {
	file, err := os.Open(path)
	if err != nil {
		return Clip{}, errors.Wrap(err, "failed to open alert sound")
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return Clip{}, errors.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Clip{}, errors.Wrap(err, "failed to decode alert sound")
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return Clip{}, errors.New("alert sound has no channels")
	}

	pcm, err := toS16(buf)
	if err != nil {
		return Clip{}, err
	}

	return Clip{
		PCM:        pcm,
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
	}, nil
}

func toS16(buf *audio.IntBuffer) ([]byte, error) {
	var convert func(int) int16
	switch buf.SourceBitDepth {
	case 8:
		// 8-битный WAV беззнаковый
		convert = func(v int) int16 { return int16((v - 128) << 8) }
	case 16:
		convert = func(v int) int16 { return int16(v) }
	case 24:
		convert = func(v int) int16 { return int16(v >> 8) }
	case 32:
		convert = func(v int) int16 { return int16(v >> 16) }
	default:
		return nil, errors.Errorf("unsupported bit depth: %d", buf.SourceBitDepth)
	}

	out := make([]byte, len(buf.Data)*2)
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(convert(v)))
	}
	return out, nil
}
