package cron

import (
	"Touchline/internal/job"
	"context"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	indexSpec    string
	sweepSpec    string
	topicIndex   *job.TopicIndexJob
	rankSweepJob *job.RankSweepJob
}

func NewCronManager(indexSpec, sweepSpec string, topicIndex *job.TopicIndexJob, rankSweepJob *job.RankSweepJob) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		indexSpec:    indexSpec,
		sweepSpec:    sweepSpec,
		topicIndex:   topicIndex,
		rankSweepJob: rankSweepJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.indexSpec, s.topicIndex); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.sweepSpec, s.rankSweepJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine starting", "index_spec", s.indexSpec, "sweep_spec", s.sweepSpec)
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Manager) Stop(ctx context.Context) {
	log.Info("Cron engine stopping")
	select {
	case <-s.engine.Stop().Done():
	case <-ctx.Done():
	}
}
