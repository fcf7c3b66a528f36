package kafka

import (
	"Touchline/internal/pkg/logger"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushProducer_Enqueue(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "65a0f0f0f0f0f0f0f0f0f0f0" {
			return errors.New("unexpected key " + string(key))
		}
		raw, _ := msg.Value.Encode()
		var job PushJob
		if err := json.Unmarshal(raw, &job); err != nil {
			return err
		}
		if job.TraceID != "req-7" || job.CreatedAt == 0 {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	p := newPushProducer(mock, "app-push")
	ctx := logger.WithTraceID(context.Background(), "req-7")
	require.NoError(t, p.Enqueue(ctx, "65a0f0f0f0f0f0f0f0f0f0f0"))
	require.NoError(t, p.Close())
}

func TestPushProducer_EnqueueError(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newPushProducer(mock, "app-push")
	err := p.Enqueue(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestToPushJob(t *testing.T) {
	job, err := ToPushJob(&sarama.ConsumerMessage{Key: []byte("k1"), Value: []byte(`{"created_at":1}`)})
	require.NoError(t, err)
	assert.Equal(t, "k1", job.PushID)

	_, err = ToPushJob(&sarama.ConsumerMessage{Value: []byte(`{}`)})
	assert.Error(t, err)

	_, err = ToPushJob(&sarama.ConsumerMessage{Value: []byte(`not json`)})
	assert.Error(t, err)
}

type recordingDispatcher struct {
	calls   []string
	traceID string
	err     error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, pushID string) error {
	d.calls = append(d.calls, pushID)
	d.traceID = logger.TraceID(ctx)
	return d.err
}

func TestPushHandler_Logic(t *testing.T) {
	d := &recordingDispatcher{}
	h := NewPushHandler(d)

	require.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(`garbage`)}))
	assert.Empty(t, d.calls)

	require.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"push_id":"p1","trace_id":"t1"}`)}))
	assert.Equal(t, []string{"p1"}, d.calls)
	assert.Equal(t, "t1", d.traceID)

	d.err = errors.New("mongo down")
	err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"push_id":"p2"}`)})
	assert.ErrorContains(t, err, "dispatch push p2")
	assert.NotEmpty(t, d.traceID)
}

func TestRetry_BacksOffUntilSuccess(t *testing.T) {
	failures := 2
	logic := func(context.Context, *sarama.ConsumerMessage) error {
		if failures > 0 {
			failures--
			return errors.New("temporary")
		}
		return nil
	}
	attempts := retry(context.Background(), &sarama.ConsumerMessage{}, logic, time.Millisecond)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	logic := func(context.Context, *sarama.ConsumerMessage) error {
		calls++
		cancel()
		return errors.New("always")
	}
	attempts := retry(ctx, &sarama.ConsumerMessage{}, logic, time.Hour)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}
