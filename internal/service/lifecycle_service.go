package service

import (
	"Touchline/internal/model"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/repository"
	"context"
	log "log/slog"
)

// LifecycleService 回收站：放入、恢复、彻底删除
type LifecycleService interface {
	// Trash 返回 changed=false 表示已经在回收站
	Trash(ctx context.Context, actor *model.User, ref model.Ref) (bool, error)
	Restore(ctx context.Context, actor *model.User, ref model.Ref) (bool, error)
	Destroy(ctx context.Context, actor *model.User, ref model.Ref) error
}

type lifecycleServiceImpl struct {
	registry         *repository.Registry
	notificationRepo mongo.NotificationRepo
	ranking          RankingService
	searchDirty      DirtyQueue
}

func NewLifecycleService(
	registry *repository.Registry,
	notificationRepo mongo.NotificationRepo,
	ranking RankingService,
	searchDirty DirtyQueue,
) LifecycleService {
	return &lifecycleServiceImpl{
		registry:         registry,
		notificationRepo: notificationRepo,
		ranking:          ranking,
		searchDirty:      searchDirty,
	}
}

func requireActive(actor *model.User) error {
	if actor == nil {
		return ErrLoginRequired
	}
	if actor.IsLocked() {
		return ErrUserLocked
	}
	return nil
}

// authorize 作者或管理员；没有作者的记录（比赛）只有管理员可以操作
func authorize(actor *model.User, entity model.Trashable) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Admin {
		return nil
	}
	if owner := entity.OwnerID(); owner > 0 && owner == actor.ID {
		return nil
	}
	return UnauthorizedError
}

// authorizeLifecycle 比赛可以被任何未锁定用户放入回收站，恢复和彻底删除仍按 authorize
func authorizeLifecycle(actor *model.User, entity model.Trashable, op lifecycleOp) error {
	if op == opTrash && entity.Ref().Kind == model.KindMatch {
		return requireActive(actor)
	}
	return authorize(actor, entity)
}

type lifecycleOp int

const (
	opTrash lifecycleOp = iota
	opRestore
	opDestroy
)

func (s *lifecycleServiceImpl) load(ctx context.Context, actor *model.User, ref model.Ref, op lifecycleOp) (repository.EntityRepo, error) {
	repo, err := s.registry.Lookup(ref.Kind)
	if err != nil {
		return nil, ErrUnknownKind
	}
	entity, err := repo.FindEntity(ctx, ref.ID, repository.ScopeWithTrashed)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	if err = authorizeLifecycle(actor, entity, op); err != nil {
		return nil, err
	}
	return repo, nil
}

func (s *lifecycleServiceImpl) Trash(ctx context.Context, actor *model.User, ref model.Ref) (bool, error) {
	return s.setTrashed(ctx, actor, ref, true)
}

func (s *lifecycleServiceImpl) Restore(ctx context.Context, actor *model.User, ref model.Ref) (bool, error) {
	return s.setTrashed(ctx, actor, ref, false)
}

func (s *lifecycleServiceImpl) setTrashed(ctx context.Context, actor *model.User, ref model.Ref, trashed bool) (bool, error) {
	op := opRestore
	if trashed {
		op = opTrash
	}
	repo, err := s.load(ctx, actor, ref, op)
	if err != nil {
		return false, err
	}
	entity, changed, err := repo.SetTrashed(ctx, ref.ID, trashed)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, ErrEntityNotFound
		}
		return false, err
	}
	if !changed {
		return false, nil
	}

	log.InfoContext(ctx, "entity trashed flag changed", "ref", ref.String(), "trashed", trashed, "actor", actor.ID)
	if trashed {
		s.afterTrash(ctx, entity)
	} else {
		s.afterRestore(ctx, entity)
	}
	return true, nil
}

func (s *lifecycleServiceImpl) Destroy(ctx context.Context, actor *model.User, ref model.Ref) error {
	repo, err := s.load(ctx, actor, ref, opDestroy)
	if err != nil {
		return err
	}
	entity, wasTrashed, err := repo.Destroy(ctx, ref.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrEntityNotFound
		}
		return err
	}

	log.InfoContext(ctx, "entity destroyed", "ref", ref.String(), "was_trashed", wasTrashed, "actor", actor.ID)
	s.purgeNotifications(ctx, entity)
	if !wasTrashed {
		s.afterDestroy(ctx, entity)
	}
	return nil
}

func (s *lifecycleServiceImpl) afterTrash(ctx context.Context, entity model.Trashable) {
	switch e := entity.(type) {
	case *model.Comment:
		s.purgeNotifications(ctx, e)
		s.touch(ctx, e.Parent())
	case *model.Topic:
		s.markSearch(ctx, e.Ref())
	}
}

func (s *lifecycleServiceImpl) afterRestore(ctx context.Context, entity model.Trashable) {
	switch e := entity.(type) {
	case *model.Comment:
		s.touch(ctx, e.Parent())
	case *model.Topic:
		s.markSearch(ctx, e.Ref())
	}
}

// afterDestroy 仅在删除前未进回收站时执行，回收站中的记录已经处理过
func (s *lifecycleServiceImpl) afterDestroy(ctx context.Context, entity model.Trashable) {
	switch e := entity.(type) {
	case *model.Comment:
		s.touch(ctx, e.Parent())
	case *model.Topic:
		s.markSearch(ctx, e.Ref())
	}
}

func (s *lifecycleServiceImpl) touch(ctx context.Context, ref model.Ref) {
	if err := s.ranking.Touch(ctx, ref); err != nil {
		log.ErrorContext(ctx, "hot refresh lost", "ref", ref.String(), "err", err)
	}
}

// purgeNotifications 评论按 subject 清理，话题与比赛按 target 清理其下全部评论的通知
func (s *lifecycleServiceImpl) purgeNotifications(ctx context.Context, entity model.Trashable) {
	ref := entity.Ref()
	var (
		n   int64
		err error
	)
	if ref.Kind == model.KindComment {
		n, err = s.notificationRepo.DeleteBySubject(ctx, string(ref.Kind), ref.ID)
	} else {
		n, err = s.notificationRepo.DeleteByTarget(ctx, string(ref.Kind), ref.ID)
	}
	if err != nil {
		log.ErrorContext(ctx, "delete notifications error", "ref", ref.String(), "err", err)
		return
	}
	if n > 0 {
		log.InfoContext(ctx, "notifications deleted", "ref", ref.String(), "count", n)
	}
}

func (s *lifecycleServiceImpl) markSearch(ctx context.Context, ref model.Ref) {
	if err := s.searchDirty.Mark(ctx, ref.String()); err != nil {
		log.ErrorContext(ctx, "mark topic search dirty error", "ref", ref.String(), "err", err)
	}
}
