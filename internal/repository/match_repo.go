package repository

import (
	"Touchline/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MatchRepo interface {
	EntityRepo
	RankRepo
	// FirstOrCreate 按 mongo_id 查找（含回收站），不存在则创建
	FirstOrCreate(ctx context.Context, match *model.Match) (created bool, err error)
	Get(ctx context.Context, id uint64, scope Scope) (*model.Match, error)
	GetByMongoID(ctx context.Context, mongoID string) (*model.Match, error)
	GetByIDs(ctx context.Context, ids []uint64, scope Scope) ([]*model.Match, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*model.Match, int64, error)
}

type MatchRepoImpl struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) MatchRepo {
	return &MatchRepoImpl{db}
}

func (s *MatchRepoImpl) Kind() model.Kind {
	return model.KindMatch
}

func (s *MatchRepoImpl) FirstOrCreate(ctx context.Context, match *model.Match) (bool, error) {
	existing, err := s.GetByMongoID(ctx, match.MongoID)
	if err == nil {
		*match = *existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	err = s.db.WithContext(ctx).Create(match).Error
	if err == nil {
		return true, nil
	}
	if !IsDuplicateError(err) {
		return false, err
	}
	// 并发创建，读回已存在的记录
	existing, err = s.GetByMongoID(ctx, match.MongoID)
	if err != nil {
		return false, err
	}
	*match = *existing
	return false, nil
}

func (s *MatchRepoImpl) Get(ctx context.Context, id uint64, scope Scope) (*model.Match, error) {
	var match model.Match
	err := s.db.WithContext(ctx).Scopes(scope.apply).Where("id = ?", id).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MatchRepoImpl) GetByMongoID(ctx context.Context, mongoID string) (*model.Match, error) {
	var match model.Match
	err := s.db.WithContext(ctx).Where("mongo_id = ?", mongoID).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MatchRepoImpl) GetByIDs(ctx context.Context, ids []uint64, scope Scope) ([]*model.Match, error) {
	if len(ids) == 0 {
		return []*model.Match{}, nil
	}
	var matches []*model.Match
	err := s.db.WithContext(ctx).Scopes(scope.apply).Where("id IN ?", ids).Find(&matches).Error
	return matches, err
}

func (s *MatchRepoImpl) List(ctx context.Context, scope Scope, limit, offset int) ([]*model.Match, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Match{}).Scopes(scope.apply).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var matches []*model.Match
	err := query.Order("hot DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&matches).Error
	return matches, total, err
}

func (s *MatchRepoImpl) FindEntity(ctx context.Context, id uint64, scope Scope) (model.Trashable, error) {
	match, err := s.Get(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *MatchRepoImpl) SetTrashed(ctx context.Context, id uint64, trashed bool) (model.Trashable, bool, error) {
	match, err := s.Get(ctx, id, ScopeWithTrashed)
	if err != nil {
		return nil, false, err
	}
	changed, err := flipTrashed(s.db.WithContext(ctx), match.TableName(), id, trashed)
	if err != nil {
		return nil, false, err
	}
	match.Trashed = trashed
	return match, changed, nil
}

func (s *MatchRepoImpl) Destroy(ctx context.Context, id uint64) (model.Trashable, bool, error) {
	var match model.Match
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&match).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Match{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteChildren(tx, match.Ref())
	})
	if err != nil {
		return nil, false, err
	}
	return &match, match.Trashed, nil
}

func (s *MatchRepoImpl) Reload(ctx context.Context, id uint64) (model.Rankable, error) {
	match, err := s.Get(ctx, id, ScopeWithTrashed)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *MatchRepoImpl) UpdateHot(ctx context.Context, id uint64, hot float64) error {
	return s.db.WithContext(ctx).Model(&model.Match{}).Where("id = ?", id).
		UpdateColumns(map[string]any{"hot": hot, "updated_at": time.Now()}).Error
}
