package audio

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

// Player проигрывает звуковой сигнал при нарушении осанки.
// Пока сигнал звучит, новые оповещения пропускаются.
type Player struct {
	ctx     *malgo.AllocatedContext
	clip    Clip
	log     logrus.FieldLogger
	playing atomic.Bool
}

// NewPlayer загружает WAV-файл и открывает аудиоконтекст
func NewPlayer(path string, log logrus.FieldLogger) (*Player, error) {
	clip, err := LoadClip(path)
	if err != nil {
		return nil, err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.WithField("component", "malgo").Debug(message)
	})
	if err != nil {
		return nil, errors.Wrap(err, "audio context init failed")
	}

	log.WithFields(logrus.Fields{
		"file":        path,
		"channels":    clip.Channels,
		"sample_rate": clip.SampleRate,
		"seconds":     clip.Duration(),
	}).Info("alert sound loaded")

	return &Player{ctx: ctx, clip: clip, log: log}, nil
}

// Name имя канала оповещений
func (p *Player) Name() string {
	return "audio"
}

// Notify проигрывает сигнал и ждёт окончания воспроизведения
func (p *Player) Notify(ctx context.Context, alerts []entity.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	if !p.playing.CompareAndSwap(false, true) {
		return nil
	}
	defer p.playing.Store(false)

	return p.play(ctx)
}

func (p *Player) play(ctx context.Context) error {
	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(p.clip.Channels)
	cfg.SampleRate = uint32(p.clip.SampleRate)
	cfg.Alsa.NoMMap = 1

	var (
		pos      int
		finished = make(chan struct{})
		once     sync.Once
	)
	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			n := copy(out, p.clip.PCM[pos:])
			pos += n
			for i := n; i < len(out); i++ {
				out[i] = 0
			}
			if pos >= len(p.clip.PCM) {
				once.Do(func() { close(finished) })
			}
		},
	}

	device, err := malgo.InitDevice(p.ctx.Context, cfg, callbacks)
	if err != nil {
		return errors.Wrap(err, "playback device init failed")
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return errors.Wrap(err, "playback start failed")
	}

	select {
	case <-finished:
	case <-ctx.Done():
	}

	return device.Stop()
}

// Close освобождает аудиоконтекст
func (p *Player) Close() error {
	if err := p.ctx.Uninit(); err != nil {
		return errors.Wrap(err, "audio context uninit failed")
	}
	p.ctx.Free()
	return nil
}

var _ port.AlertNotifier = (*Player)(nil)
