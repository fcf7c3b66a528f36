package service

import "context"

// DirtyQueue 待异步处理的记录集合，由 redis.DirtySet 实现
type DirtyQueue interface {
	Mark(ctx context.Context, members ...string) error
	Drain(ctx context.Context) ([]string, error)
}

// PushQueue 推送任务队列，消息 key 为推送记录 id
type PushQueue interface {
	Enqueue(ctx context.Context, pushID string) error
}
