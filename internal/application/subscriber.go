package app

import (
	"context"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

type SubscriberService struct {
	repo port.SubscriberRepository
}

func NewSubscriberService(repo port.SubscriberRepository) *SubscriberService {
	return &SubscriberService{repo: repo}
}

func (s *SubscriberService) SetState(ctx context.Context, chatID int64, state entity.SubscriberState) (*entity.Subscriber, error) {
	subscriber, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	subscriber.SetState(state)
	if err := s.repo.Save(ctx, subscriber); err != nil {
		return nil, err
	}

	return subscriber, nil
}

func (s *SubscriberService) Subscribe(ctx context.Context, chatID int64) (*entity.Subscriber, error) {
	return s.SetState(ctx, chatID, entity.StateSubscribed)
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, chatID int64) (*entity.Subscriber, error) {
	return s.SetState(ctx, chatID, entity.StateUnsubscribed)
}

// Active возвращает подписчиков, которым нужно отправлять предупреждения
func (s *SubscriberService) Active(ctx context.Context) ([]*entity.Subscriber, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*entity.Subscriber, 0, len(all))
	for _, sub := range all {
		if sub.Active() {
			active = append(active, sub)
		}
	}
	return active, nil
}
