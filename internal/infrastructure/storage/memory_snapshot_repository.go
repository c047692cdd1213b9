package storage

import (
	"context"
	"sync"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

// MemorySnapshotRepository хранит только последний кадр и раздаёт новые кадры подписчикам.
// Медленный подписчик получает самый свежий кадр, устаревшие отбрасываются.
type MemorySnapshotRepository struct {
	mu          sync.RWMutex
	latest      *entity.Snapshot
	sequence    uint64
	nextID      uint64
	subscribers map[uint64]chan *entity.Snapshot
}

// NewMemorySnapshotRepository создаёт пустое хранилище кадров
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{
		subscribers: make(map[uint64]chan *entity.Snapshot),
	}
}

// Save присваивает кадру номер, сохраняет его и рассылает подписчикам без блокировки
func (r *MemorySnapshotRepository) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	snapshot.Sequence = r.sequence
	r.latest = snapshot

	for _, ch := range r.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Подписчик не успевает: заменяем непрочитанный кадр свежим
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}

	return nil
}

// Latest возвращает последний кадр
func (r *MemorySnapshotRepository) Latest(ctx context.Context) (*entity.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.latest == nil {
		return nil, entity.ErrNoSnapshot
	}
	return r.latest, nil
}

// Subscribe регистрирует подписчика. Канал закрывается функцией отписки или отменой ctx.
func (r *MemorySnapshotRepository) Subscribe(ctx context.Context) (<-chan *entity.Snapshot, func()) {
	ch := make(chan *entity.Snapshot, 1)

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subscribers[id] = ch
	r.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subscribers, id)
			close(ch)
			r.mu.Unlock()
			close(done)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel
}

// Subscribers возвращает число активных подписчиков
func (r *MemorySnapshotRepository) Subscribers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}

var _ port.SnapshotRepository = (*MemorySnapshotRepository)(nil)
