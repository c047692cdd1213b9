package port

import (
	"context"

	"posture-monitor/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков
type SubscriberRepository interface {
	// Get возвращает подписчика по ID чата, создаёт нового если не найден
	Get(ctx context.Context, chatID int64) (*entity.Subscriber, error)

	// Save сохраняет состояние подписчика
	Save(ctx context.Context, subscriber *entity.Subscriber) error

	// List возвращает всех подписчиков
	List(ctx context.Context) ([]*entity.Subscriber, error)
}

// SnapshotRepository хранит последний опубликованный кадр и раздаёт его подписчикам
type SnapshotRepository interface {
	// Save заменяет последний кадр и рассылает его подписчикам
	Save(ctx context.Context, snapshot *entity.Snapshot) error

	// Latest возвращает последний кадр или entity.ErrNoSnapshot
	Latest(ctx context.Context) (*entity.Snapshot, error)

	// Subscribe возвращает канал новых кадров и функцию отписки
	Subscribe(ctx context.Context) (<-chan *entity.Snapshot, func())
}
