package kafka

import (
	"Touchline/internal/api/config"
	"Touchline/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// PushProducer 推送任务生产者
type PushProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPushProducer(cfg *config.Config) (*PushProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "create push producer")
	}
	return newPushProducer(producer, cfg.KafkaPushConsumer.Topic), nil
}

func newPushProducer(producer sarama.SyncProducer, topic string) *PushProducer {
	return &PushProducer{producer: producer, topic: topic}
}

func (p *PushProducer) Enqueue(ctx context.Context, pushID string) error {
	job := &PushJob{PushID: pushID, TraceID: logger.TraceID(ctx)}
	msg, err := newPushMessage(p.topic, job)
	if err != nil {
		return errors.Wrap(err, "encode push job")
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "send push job %s", pushID)
	}
	log.InfoContext(ctx, "push job enqueued", "push_id", pushID, "partition", partition, "offset", offset)
	return nil
}

func (p *PushProducer) Close() error {
	return p.producer.Close()
}
