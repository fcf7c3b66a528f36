package job

import (
	"Touchline/internal/pkg/logger"
	"Touchline/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// RankSweepJob 重算之前写入失败的热度
type RankSweepJob struct {
	rankingSvc service.RankingService
}

func NewRankSweepJob(rankingSvc service.RankingService) *RankSweepJob {
	return &RankSweepJob{rankingSvc: rankingSvc}
}

func (s *RankSweepJob) Run() {
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), "job-rank-"+uuid.NewString()), 5*time.Minute)
	defer cancel()

	total, success, err := s.rankingSvc.Sweep(ctx)
	if err != nil {
		log.ErrorContext(ctx, "sweep hot error", "err", err)
		return
	}
	if total > 0 {
		log.InfoContext(ctx, "sweep hot done", "total_count", total, "success_count", success)
	}
}
