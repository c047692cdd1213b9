package api

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	app "posture-monitor/internal/application"
	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я слежу за осанкой перед камерой.

🔔 Вы подписаны на предупреждения.

📋 Команды:
/status — текущий кадр с разметкой
/stop — отключить предупреждения
/help — справка`

	msgHelp = `ℹ️ Как это работает:

1️⃣ Камера находит лицо в кадре
2️⃣ Проверяется положение, расстояние и наклон головы
3️⃣ При нарушении приходит предупреждение

📋 Команды:
/start — включить предупреждения
/stop — отключить предупреждения
/status — текущий кадр с разметкой`

	msgStopped        = "🔕 Предупреждения отключены. Отправьте /start, чтобы включить их снова."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgNoSnapshot     = "📷 Камера ещё не прислала ни одного кадра."
	msgStorageError   = "⚠️ Не удалось обработать запрос. Попробуйте позже."
	msgPostureOK      = "✅ Осанка в порядке."
	msgNoFace         = "🙈 Лицо не найдено."
)

// botClient часть tgbotapi.BotAPI, которую использует бот
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot Telegram-бот: управляет подпиской и рассылает предупреждения
type Bot struct {
	api         botClient
	subscribers *app.SubscriberService
	snapshots   port.SnapshotRepository
	log         logrus.FieldLogger
}

// NewBot создаёт нового бота
func NewBot(token string, subscribers *app.SubscriberService, snapshots port.SnapshotRepository, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram authorization failed")
	}

	log.WithField("account", api.Self.UserName).Info("telegram bot authorized")

	return newBot(api, subscribers, snapshots, log), nil
}

func newBot(api botClient, subscribers *app.SubscriberService, snapshots port.SnapshotRepository, log logrus.FieldLogger) *Bot {
	return &Bot{
		api:         api,
		subscribers: subscribers,
		snapshots:   snapshots,
		log:         log,
	}
}

// Run обрабатывает входящие сообщения до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// Name имя канала оповещений
func (b *Bot) Name() string {
	return "telegram"
}

// Notify рассылает предупреждения всем активным подписчикам
func (b *Bot) Notify(ctx context.Context, alerts []entity.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	active, err := b.subscribers.Active(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list subscribers")
	}

	text := formatAlerts(alerts)

	var failed int
	var lastErr error
	for _, sub := range active {
		if _, err := b.api.Send(tgbotapi.NewMessage(sub.ChatID, text)); err != nil {
			failed++
			lastErr = err
		}
	}
	if lastErr != nil {
		return errors.Wrapf(lastErr, "failed to notify %d of %d chats", failed, len(active))
	}
	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
		return
	}

	switch msg.Command() {
	case "start":
		if _, err := b.subscribers.Subscribe(ctx, msg.Chat.ID); err != nil {
			b.log.WithField("error", err.Error()).Error("subscribe failed")
			b.sendMessage(msg.Chat.ID, msgStorageError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "stop":
		if _, err := b.subscribers.Unsubscribe(ctx, msg.Chat.ID); err != nil {
			b.log.WithField("error", err.Error()).Error("unsubscribe failed")
			b.sendMessage(msg.Chat.ID, msgStorageError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgStopped)

	case "status":
		b.sendStatus(ctx, msg.Chat.ID)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// sendStatus отправляет последний размеченный кадр
func (b *Bot) sendStatus(ctx context.Context, chatID int64) {
	snap, err := b.snapshots.Latest(ctx)
	if errors.Is(err, entity.ErrNoSnapshot) {
		b.sendMessage(chatID, msgNoSnapshot)
		return
	}
	if err != nil {
		b.log.WithField("error", err.Error()).Error("failed to load snapshot")
		b.sendMessage(chatID, msgStorageError)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("posture-%d.jpg", snap.Sequence),
		Bytes: snap.JPEG,
	})
	photo.Caption = snapshotCaption(snap)

	if _, err := b.api.Send(photo); err != nil {
		b.log.WithFields(logrus.Fields{
			"chat_id": chatID,
			"error":   err.Error(),
		}).Error("failed to send photo")
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithFields(logrus.Fields{
			"chat_id": chatID,
			"error":   err.Error(),
		}).Error("failed to send message")
	}
}

func formatAlerts(alerts []entity.Alert) string {
	var sb strings.Builder
	sb.WriteString("⚠️ ")
	sb.WriteString(entity.AlertBanner)
	for _, a := range alerts {
		sb.WriteString("\n• ")
		sb.WriteString(a.String())
	}
	return sb.String()
}

func snapshotCaption(snap *entity.Snapshot) string {
	switch {
	case snap.HasAlerts():
		return formatAlerts(snap.Alerts)
	case !snap.FaceDetected:
		return msgNoFace
	default:
		return msgPostureOK
	}
}

var _ port.AlertNotifier = (*Bot)(nil)
