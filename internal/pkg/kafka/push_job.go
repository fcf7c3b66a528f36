package kafka

import (
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// PushJob 推送任务消息体，key 同为推送记录 id
type PushJob struct {
	PushID    string `json:"push_id"`
	TraceID   string `json:"trace_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func newPushMessage(topic string, job *PushJob) (*sarama.ProducerMessage, error) {
	if job.CreatedAt == 0 {
		job.CreatedAt = time.Now().Unix()
	}
	value, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(job.PushID),
		Value: sarama.ByteEncoder(value),
	}, nil
}

// ToPushJob 将kafka消息转换为推送任务
func ToPushJob(msg *sarama.ConsumerMessage) (*PushJob, error) {
	var job PushJob
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		return nil, err
	}
	if job.PushID == "" {
		job.PushID = string(msg.Key)
	}
	if job.PushID == "" {
		return nil, errors.New("push id is empty")
	}
	return &job, nil
}
