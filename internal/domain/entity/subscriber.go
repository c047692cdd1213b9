package entity

// SubscriberState состояние подписки чата на уведомления
type SubscriberState string

const (
	StateSubscribed   SubscriberState = "subscribed"   // Получает предупреждения
	StateUnsubscribed SubscriberState = "unsubscribed" // Уведомления отключены
)

// Subscriber представляет чат, получающий предупреждения об осанке
type Subscriber struct {
	ChatID int64           // Telegram Chat ID
	State  SubscriberState // Текущее состояние подписки
}

// NewSubscriber создаёт подписчика в состоянии subscribed
func NewSubscriber(chatID int64) *Subscriber {
	return &Subscriber{
		ChatID: chatID,
		State:  StateSubscribed,
	}
}

// SetState обновляет состояние подписки
func (s *Subscriber) SetState(state SubscriberState) {
	s.State = state
}

// Active сообщает, нужно ли отправлять подписчику уведомления
func (s *Subscriber) Active() bool {
	return s.State == StateSubscribed
}
