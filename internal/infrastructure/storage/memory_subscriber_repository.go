package storage

import (
	"context"
	"sort"
	"sync"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков
type MemorySubscriberRepository struct {
	mu          sync.RWMutex
	subscribers map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт новое in-memory хранилище
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subscribers: make(map[int64]*entity.Subscriber),
	}
}

// Get возвращает копию подписчика по ID чата, создаёт нового если не найден
func (r *MemorySubscriberRepository) Get(ctx context.Context, chatID int64) (*entity.Subscriber, error) {
	r.mu.RLock()
	sub, exists := r.subscribers[chatID]
	r.mu.RUnlock()

	if exists {
		cp := *sub
		return &cp, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Повторная проверка: другой вызов мог создать запись между блокировками
	if sub, exists := r.subscribers[chatID]; exists {
		cp := *sub
		return &cp, nil
	}
	newSub := entity.NewSubscriber(chatID)
	r.subscribers[chatID] = newSub

	cp := *newSub
	return &cp, nil
}

// Save сохраняет копию состояния подписчика
func (r *MemorySubscriberRepository) Save(ctx context.Context, subscriber *entity.Subscriber) error {
	cp := *subscriber

	r.mu.Lock()
	r.subscribers[subscriber.ChatID] = &cp
	r.mu.Unlock()

	return nil
}

// List возвращает копии всех подписчиков, упорядоченные по ID чата
func (r *MemorySubscriberRepository) List(ctx context.Context) ([]*entity.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Subscriber, 0, len(r.subscribers))
	for _, sub := range r.subscribers {
		cp := *sub
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })

	return out, nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
