package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Equal(t, BackendGoCV, cfg.CameraBackend)
	require.Equal(t, "0", cfg.CameraDevice)
	require.Equal(t, 640, cfg.CameraWidth)
	require.Equal(t, 480, cfg.CameraHeight)
	require.Equal(t, ":5000", cfg.HTTPAddr)
	require.Equal(t, 80, cfg.JPEGQuality)
	require.Equal(t, 3*time.Second, cfg.AlertCooldown)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.TelegramToken)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CAMERA_BACKEND", "V4L2")
	t.Setenv("CAMERA_DEVICE", "/dev/video2")
	t.Setenv("ALERT_COOLDOWN", "10s")
	t.Setenv("TELEGRAM_CHAT_ID", "123456")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, BackendV4L2, cfg.CameraBackend)
	require.Equal(t, "/dev/video2", cfg.CameraDevice)
	require.Equal(t, 10*time.Second, cfg.AlertCooldown)
	require.Equal(t, int64(123456), cfg.TelegramChatID)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--http-addr", ":7000", "--jpeg-quality", "55"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.HTTPAddr)
	require.Equal(t, 55, cfg.JPEGQuality)
}

func TestLoad_UnchangedFlagKeepsEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			CameraBackend: BackendGoCV,
			CameraDevice:  "0",
			CameraWidth:   640,
			CameraHeight:  480,
			JPEGQuality:   80,
		}
	}
	require.NoError(t, base().Validate())

	cases := map[string]func(c *Config){
		"backend":  func(c *Config) { c.CameraBackend = "dshow" },
		"device":   func(c *Config) { c.CameraDevice = "" },
		"size":     func(c *Config) { c.CameraHeight = 0 },
		"quality":  func(c *Config) { c.JPEGQuality = 101 },
		"cooldown": func(c *Config) { c.AlertCooldown = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			require.Error(t, c.Validate())
		})
	}
}
