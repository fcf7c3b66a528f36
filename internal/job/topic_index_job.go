package job

import (
	"Touchline/internal/model"
	"Touchline/internal/pkg/logger"
	"Touchline/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// TopicIndexJob 同步搜索索引：取走脏集合，逐个重建文档，失败的放回集合等下一轮
type TopicIndexJob struct {
	topicSvc service.TopicService
	dirty    service.DirtyQueue
}

func NewTopicIndexJob(topicSvc service.TopicService, dirty service.DirtyQueue) *TopicIndexJob {
	return &TopicIndexJob{topicSvc: topicSvc, dirty: dirty}
}

func (s *TopicIndexJob) Run() {
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), "job-index-"+uuid.NewString()), 5*time.Minute)
	defer cancel()
	s.sync(ctx)
}

func (s *TopicIndexJob) sync(ctx context.Context) (total, success int) {
	members, err := s.dirty.Drain(ctx)
	if err != nil {
		log.ErrorContext(ctx, "drain topic search dirty set error", "err", err)
		return 0, 0
	}
	if len(members) == 0 {
		return 0, 0
	}

	log.InfoContext(ctx, "start syncing topic index", "count", len(members))

	var failed []string
	for _, m := range members {
		ref, err := model.ParseRef(m)
		if err != nil {
			log.WarnContext(ctx, "skip invalid search member", "member", m, "err", err)
			continue
		}
		if err = s.topicSvc.Reindex(ctx, ref); err != nil {
			log.ErrorContext(ctx, "reindex topic error", "ref", m, "err", err)
			failed = append(failed, m)
			continue
		}
		success++
	}

	if len(failed) > 0 {
		if err = s.dirty.Mark(ctx, failed...); err != nil {
			log.ErrorContext(ctx, "requeue failed topics error", "count", len(failed), "err", err)
		}
	}

	log.InfoContext(ctx, "sync topic index done",
		"total_count", len(members),
		"success_count", success)
	return len(members), success
}
