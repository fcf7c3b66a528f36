package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/redis"
	"Touchline/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

const hotFeedExpiration = time.Minute

type RankingService interface {
	// Touch 重新读取记录并写回热度；没有热度列的类型直接忽略。
	// 写回失败时转入待重算集合由 Sweep 补上，只有入队也失败才返回错误
	Touch(ctx context.Context, ref model.Ref) error
	// Sweep 重算之前写入失败的热度
	Sweep(ctx context.Context) (total int, success int, err error)
	HotFeed(ctx context.Context, limit int) (*dto.HotFeedDTO, error)
}

type rankingServiceImpl struct {
	registry *repository.Registry
	topics   repository.TopicRepos
	userRepo repository.UserRepo
	pending  DirtyQueue
	rdb      *redisv9.Client
}

func NewRankingService(
	registry *repository.Registry,
	topics repository.TopicRepos,
	userRepo repository.UserRepo,
	pending DirtyQueue,
	rdb *redisv9.Client,
) RankingService {
	return &rankingServiceImpl{
		registry: registry,
		topics:   topics,
		userRepo: userRepo,
		pending:  pending,
		rdb:      rdb,
	}
}

func (s *rankingServiceImpl) Touch(ctx context.Context, ref model.Ref) error {
	_, err := s.refresh(ctx, ref)
	return err
}

// refresh 返回 updated=false 表示本次没有写回，err 为 nil 时已经入队等待 Sweep
func (s *rankingServiceImpl) refresh(ctx context.Context, ref model.Ref) (bool, error) {
	err := s.touch(ctx, ref)
	if err == nil || repository.IsNotFound(err) {
		return true, nil
	}
	log.WarnContext(ctx, "update hot failed, queued for sweep", "ref", ref.String(), "err", err)
	if markErr := s.pending.Mark(ctx, ref.String()); markErr != nil {
		return false, fmt.Errorf("queue %s for sweep: %w (update hot: %v)", ref, markErr, err)
	}
	return false, nil
}

func (s *rankingServiceImpl) touch(ctx context.Context, ref model.Ref) error {
	ranker, ok := s.registry.Ranker(ref.Kind)
	if !ok {
		return nil
	}
	entity, err := ranker.Reload(ctx, ref.ID)
	if err != nil {
		return err
	}
	return ranker.UpdateHot(ctx, ref.ID, model.HotOf(entity))
}

func (s *rankingServiceImpl) Sweep(ctx context.Context) (int, int, error) {
	members, err := s.pending.Drain(ctx)
	if err != nil {
		return 0, 0, err
	}
	success := 0
	for _, m := range members {
		ref, err := model.ParseRef(m)
		if err != nil {
			log.WarnContext(ctx, "skip invalid rank member", "member", m, "err", err)
			continue
		}
		updated, err := s.refresh(ctx, ref)
		if err != nil {
			log.ErrorContext(ctx, "hot refresh lost", "ref", m, "err", err)
			continue
		}
		if updated {
			success++
		}
	}
	if success > 0 && s.rdb != nil {
		if err = redis.DeleteKeys(ctx, s.rdb, consts.HotFeedKey+":*"); err != nil {
			log.WarnContext(ctx, "drop hot feed cache error", "err", err)
		}
	}
	return len(members), success, nil
}

func hotFeedKey(limit int) string {
	return consts.HotFeedKey + ":" + strconv.Itoa(limit)
}

func (s *rankingServiceImpl) HotFeed(ctx context.Context, limit int) (*dto.HotFeedDTO, error) {
	var feed dto.HotFeedDTO
	if s.rdb != nil {
		if hit, err := redis.GetJSON(ctx, s.rdb, hotFeedKey(limit), &feed); err == nil && hit {
			return &feed, nil
		}
	}

	soccer, err := s.hottest(ctx, model.SectionSoccer, limit)
	if err != nil {
		return nil, err
	}
	nba, err := s.hottest(ctx, model.SectionNBA, limit)
	if err != nil {
		return nil, err
	}
	feed = dto.HotFeedDTO{Topics: soccer, NbaTopics: nba}

	if s.rdb != nil {
		if err = redis.SetJSON(ctx, s.rdb, hotFeedKey(limit), &feed, hotFeedExpiration); err != nil {
			log.WarnContext(ctx, "cache hot feed error", "err", err)
		}
	}
	return &feed, nil
}

func (s *rankingServiceImpl) hottest(ctx context.Context, section model.Section, limit int) ([]*dto.TopicDTO, error) {
	topics, _, err := s.topics[section].List(ctx, repository.TopicQuery{Tab: repository.TabHot, Limit: limit})
	if err != nil {
		return nil, err
	}
	return topicDTOs(ctx, s.userRepo, nil, 0, topics, false), nil
}
