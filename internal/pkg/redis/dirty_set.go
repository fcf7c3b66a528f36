package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// DirtySet 待处理成员集合，由定时任务整批取走
type DirtySet struct {
	rdb *redis.Client
	key string
}

func NewDirtySet(rdb *redis.Client, key string) *DirtySet {
	return &DirtySet{rdb: rdb, key: key}
}

func (d *DirtySet) Mark(ctx context.Context, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, 0, len(members))
	for _, m := range members {
		args = append(args, m)
	}
	return d.rdb.SAdd(ctx, d.key, args...).Err()
}

// Drain 将集合改名为 :processing 后读取并删除，期间新标记写入新集合
func (d *DirtySet) Drain(ctx context.Context) ([]string, error) {
	n, err := d.rdb.Exists(ctx, d.key).Result()
	if err != nil || n == 0 {
		return nil, err
	}
	processingKey := d.key + ":processing"
	if err = d.rdb.Rename(ctx, d.key, processingKey).Err(); err != nil {
		return nil, err
	}
	members, err := d.rdb.SMembers(ctx, processingKey).Result()
	if err != nil {
		return nil, err
	}
	return members, d.rdb.Del(ctx, processingKey).Err()
}
