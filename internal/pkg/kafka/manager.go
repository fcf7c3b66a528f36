package kafka

import (
	"Touchline/internal/api/config"
	"context"
	"errors"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
)

// ConsumerManager 目前只有推送一个消费组
type ConsumerManager struct {
	group   sarama.ConsumerGroup
	topic   string
	handler sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, dispatcher PushDispatcher) (*ConsumerManager, error) {
	group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPushConsumer.GroupID, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &ConsumerManager{
		group:   group,
		topic:   cfg.KafkaPushConsumer.Topic,
		handler: NewPushHandler(dispatcher),
	}, nil
}

// Start 阻塞直到 ctx 结束，rebalance 后重新加入消费组
func (m *ConsumerManager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for err := range m.group.Errors() {
			log.Error("push consumer group error", "err", err)
		}
	}()

	go func() {
		defer wg.Done()
		log.Info("App push consumer started", "topic", m.topic)
		for {
			err := m.group.Consume(ctx, []string{m.topic}, m.handler)
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Error("push consumer error", "err", err)
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka consumers shutting down...")
	err := m.group.Close()
	wg.Wait()
	return err
}
