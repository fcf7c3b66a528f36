package kafka

import (
	"Touchline/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// PushDispatcher 执行一次推送投递
type PushDispatcher interface {
	Dispatch(ctx context.Context, pushID string) error
}

type PushHandler struct {
	dispatcher PushDispatcher
}

func NewPushHandler(dispatcher PushDispatcher) *PushHandler {
	return &PushHandler{dispatcher: dispatcher}
}

func (s *PushHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("app push consumer setup")
	return nil
}

func (s *PushHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("app push consumer cleanup")
	return nil
}

func (s *PushHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("app push consume claim", "topic", claim.Topic(), "partition", claim.Partition())
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("app push process batch error", "err", err)
		return err
	}
	return nil
}

func (s *PushHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	job, err := ToPushJob(msg)
	if err != nil {
		// 格式错误的消息重试也无法成功
		log.Error("invalid push job, skip", "offset", msg.Offset, "err", err)
		return nil
	}
	ctx = logger.WithTraceID(ctx, job.TraceID)
	if err = s.dispatcher.Dispatch(ctx, job.PushID); err != nil {
		return errors.Wrapf(err, "dispatch push %s", job.PushID)
	}
	return nil
}
