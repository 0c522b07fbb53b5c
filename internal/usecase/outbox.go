package usecase

import (
	"time"

	"github.com/soyRex-codes/mybank/internal/domain"
)

func outboxEventFrom(id string, event domain.Event) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            id,
		AggregateID:   event.AggregateID(),
		AggregateType: domain.AggregateTypeAccount,
		EventType:     event.EventType(),
		Payload:       event.Payload(),
		CreatedAt:     time.Now().UTC(),
	}
}
