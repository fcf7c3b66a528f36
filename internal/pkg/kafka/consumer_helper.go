package kafka

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second

	minBackoff = 100 * time.Millisecond
	maxBackoff = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 攒满 batchSize 或等待 batchTimeout 后处理一批
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		processBatch(session, batch, logic)
		batch = batch[:0]
		ticker.Reset(batchTimeout)
	}

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理，全部完成后才提交本批最后一条的位点
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	ctx := session.Context()
	var wg sync.WaitGroup
	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			retry(ctx, m, logic, minBackoff)
		}(msg)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return
	}
	session.MarkMessage(messages[len(messages)-1], "")
	session.Commit()
}

// retry 指数退避直到成功或 ctx 结束，返回尝试次数
func retry(ctx context.Context, msg *sarama.ConsumerMessage, logic LogicFunc, backoff time.Duration) int {
	attempts := 0
	for {
		attempts++
		err := logic(ctx, msg)
		if err == nil {
			return attempts
		}
		log.ErrorContext(ctx, "process message error", "topic", msg.Topic, "offset", msg.Offset, "attempt", attempts, "err", err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempts
		case <-timer.C:
		}
		backoff = min(backoff*2, maxBackoff)
	}
}
