package producer

import (
	"context"
	"encoding/json"

	"github.com/pronosport/tips-platform/internal/shared/kafka"
	"github.com/pronosport/tips-platform/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.Writer, e.BetID, b)
}
