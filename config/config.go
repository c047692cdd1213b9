package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendGoCV = "gocv"
	BackendV4L2 = "v4l2"
)

// Ключи конфигурации. В окружении имя пишется заглавными буквами с подчёркиванием.
const (
	keyCameraBackend  = "camera-backend"
	keyCameraDevice   = "camera-device"
	keyCameraWidth    = "camera-width"
	keyCameraHeight   = "camera-height"
	keyCascadePath    = "cascade-path"
	keyHTTPAddr       = "http-addr"
	keyJPEGQuality    = "jpeg-quality"
	keyAlertSound     = "alert-sound"
	keyAlertCooldown  = "alert-cooldown"
	keyTelegramToken  = "telegram-token"
	keyTelegramChatID = "telegram-chat-id"
	keyLogLevel       = "log-level"
	keyLogFile        = "log-file"
)

type Config struct {
	CameraBackend  string
	CameraDevice   string
	CameraWidth    int
	CameraHeight   int
	CascadePath    string
	HTTPAddr       string
	JPEGQuality    int
	AlertSound     string
	AlertCooldown  time.Duration
	TelegramToken  string
	TelegramChatID int64
	LogLevel       string
	LogFile        string
}

// RegisterFlags добавляет флаги командной строки для всех ключей
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(keyCameraBackend, BackendGoCV, "Camera backend (gocv|v4l2)")
	fs.String(keyCameraDevice, "0", "Camera index or device path")
	fs.Int(keyCameraWidth, 640, "Requested capture width")
	fs.Int(keyCameraHeight, 480, "Requested capture height")
	fs.String(keyCascadePath, "haarcascades/haarcascade_frontalface_default.xml", "Haar cascade file for face detection")
	fs.String(keyHTTPAddr, ":5000", "Listen address of the web stream")
	fs.Int(keyJPEGQuality, 80, "JPEG quality of streamed frames (1-100)")
	fs.String(keyAlertSound, "alert.wav", "WAV file played on posture alerts, empty to disable")
	fs.Duration(keyAlertCooldown, 3*time.Second, "Minimum interval between notifications per channel")
	fs.String(keyTelegramToken, "", "Telegram bot token, empty to disable the bot")
	fs.Int64(keyTelegramChatID, 0, "Telegram chat subscribed on startup")
	fs.String(keyLogLevel, "info", "Log level")
	fs.String(keyLogFile, "", "Optional log file with rotation")
}

func Load(flags *pflag.FlagSet) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := pflag.NewFlagSet("defaults", pflag.ContinueOnError)
	RegisterFlags(defaults)
	defaults.VisitAll(func(f *pflag.Flag) {
		v.SetDefault(f.Name, f.DefValue)
	})

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "error binding flags")
		}
	}

	cfg := &Config{
		CameraBackend:  strings.ToLower(v.GetString(keyCameraBackend)),
		CameraDevice:   v.GetString(keyCameraDevice),
		CameraWidth:    v.GetInt(keyCameraWidth),
		CameraHeight:   v.GetInt(keyCameraHeight),
		CascadePath:    v.GetString(keyCascadePath),
		HTTPAddr:       v.GetString(keyHTTPAddr),
		JPEGQuality:    v.GetInt(keyJPEGQuality),
		AlertSound:     v.GetString(keyAlertSound),
		AlertCooldown:  v.GetDuration(keyAlertCooldown),
		TelegramToken:  v.GetString(keyTelegramToken),
		TelegramChatID: v.GetInt64(keyTelegramChatID),
		LogLevel:       v.GetString(keyLogLevel),
		LogFile:        v.GetString(keyLogFile),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, без которых монитор не запустится
func (c *Config) Validate() error {
	switch c.CameraBackend {
	case BackendGoCV, BackendV4L2:
	default:
		return errors.Errorf("unknown camera backend %q", c.CameraBackend)
	}
	if c.CameraDevice == "" {
		return errors.New("camera device is required")
	}
	if c.CameraWidth <= 0 || c.CameraHeight <= 0 {
		return errors.Errorf("invalid capture size %dx%d", c.CameraWidth, c.CameraHeight)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.Errorf("jpeg quality must be in 1..100, got %d", c.JPEGQuality)
	}
	if c.AlertCooldown < 0 {
		return errors.New("alert cooldown must not be negative")
	}
	return nil
}
