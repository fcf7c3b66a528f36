package repository

import (
	"Touchline/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepo interface {
	// FindOrCreate 已存在则直接返回，新建时同事务增加目标 likes_count
	FindOrCreate(ctx context.Context, userID uint64, target model.Ref) (like *model.Like, created bool, err error)
	// Delete 删除 (user, target) 的全部点赞并扣减计数，返回删除条数
	Delete(ctx context.Context, userID uint64, target model.Ref) (int64, error)
	Exists(ctx context.Context, userID uint64, target model.Ref) (bool, error)
	CountByTarget(ctx context.Context, target model.Ref) (int64, error)
	CountByUser(ctx context.Context, userID uint64, kind model.Kind) (int64, error)
	// GetLikedIDs 用户点赞过的某类对象 id，按点赞时间倒序
	GetLikedIDs(ctx context.Context, userID uint64, kind model.Kind, limit, offset int) ([]uint64, error)
	// FilterLiked 在给定 id 中筛出用户点赞过的
	FilterLiked(ctx context.Context, userID uint64, kind model.Kind, ids []uint64) ([]uint64, error)
}

type LikeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &LikeRepoImpl{db}
}

func (s *LikeRepoImpl) FindOrCreate(ctx context.Context, userID uint64, target model.Ref) (*model.Like, bool, error) {
	like := &model.Like{
		UserID:       userID,
		LikeableType: target.Kind,
		LikeableID:   target.ID,
		CreatedAt:    time.Now(),
	}
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Where("user_id = ? AND likeable_type = ? AND likeable_id = ?", userID, target.Kind, target.ID).
				First(like).Error
		}
		created = true
		return addActiveCounter(tx, target, colLikesCount, 1)
	})
	if err != nil {
		return nil, false, err
	}
	return like, created, nil
}

func (s *LikeRepoImpl) Delete(ctx context.Context, userID uint64, target model.Ref) (int64, error) {
	var rows int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND likeable_type = ? AND likeable_id = ?", userID, target.Kind, target.ID).
			Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}
		return addCounter(tx, target, colLikesCount, -int(rows))
	})
	return rows, err
}

func (s *LikeRepoImpl) Exists(ctx context.Context, userID uint64, target model.Ref) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND likeable_type = ? AND likeable_id = ?", userID, target.Kind, target.ID).
		Count(&count).Error
	return count > 0, err
}

func (s *LikeRepoImpl) CountByTarget(ctx context.Context, target model.Ref) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("likeable_type = ? AND likeable_id = ?", target.Kind, target.ID).
		Count(&count).Error
	return count, err
}

func (s *LikeRepoImpl) CountByUser(ctx context.Context, userID uint64, kind model.Kind) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND likeable_type = ?", userID, kind).
		Count(&count).Error
	return count, err
}

func (s *LikeRepoImpl) GetLikedIDs(ctx context.Context, userID uint64, kind model.Kind, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND likeable_type = ?", userID, kind).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Pluck("likeable_id", &ids).Error
	return ids, err
}

func (s *LikeRepoImpl) FilterLiked(ctx context.Context, userID uint64, kind model.Kind, ids []uint64) ([]uint64, error) {
	if userID == 0 || len(ids) == 0 {
		return []uint64{}, nil
	}
	var liked []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND likeable_type = ? AND likeable_id IN ?", userID, kind, ids).
		Pluck("likeable_id", &liked).Error
	return liked, err
}
