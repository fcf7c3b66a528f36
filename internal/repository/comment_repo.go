package repository

import (
	"Touchline/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// CommentQuery 评论列表查询条件，Parent 与 UserID 至少给一个或都不给（后台）
type CommentQuery struct {
	Parent model.Ref
	UserID uint64
	Scope  Scope
	Desc   bool
	Limit  int
	Offset int
}

type CommentRepo interface {
	EntityRepo
	// Create 写入评论并在同一事务内增加父对象 comments_count；父对象不存在或已在回收站时返回 gorm.ErrRecordNotFound
	Create(ctx context.Context, comment *model.Comment) error
	Get(ctx context.Context, id uint64, scope Scope) (*model.Comment, error)
	GetByIDs(ctx context.Context, ids []uint64, scope Scope) ([]*model.Comment, error)
	UpdateBody(ctx context.Context, id uint64, body string) error
	List(ctx context.Context, q CommentQuery) ([]*model.Comment, int64, error)
	// CountBefore 同一父对象下 id 更小的未删除评论数
	CountBefore(ctx context.Context, parent model.Ref, id uint64) (int64, error)
	CountActive(ctx context.Context, parent model.Ref) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db}
}

func (s *CommentRepoImpl) Kind() model.Kind {
	return model.KindComment
}

func (s *CommentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return addActiveCounter(tx, comment.Parent(), colCommentsCount, 1)
	})
}

func (s *CommentRepoImpl) Get(ctx context.Context, id uint64, scope Scope) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).Scopes(scope.apply).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentRepoImpl) GetByIDs(ctx context.Context, ids []uint64, scope Scope) ([]*model.Comment, error) {
	if len(ids) == 0 {
		return []*model.Comment{}, nil
	}
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Scopes(scope.apply).Where("id IN ?", ids).Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) UpdateBody(ctx context.Context, id uint64, body string) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{"body": body, "updated_at": time.Now()}).Error
}

func (s *CommentRepoImpl) List(ctx context.Context, q CommentQuery) ([]*model.Comment, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Comment{}).Scopes(q.Scope.apply)
	if !q.Parent.IsZero() {
		query = query.Where("commentable_type = ? AND commentable_id = ?", q.Parent.Kind, q.Parent.ID)
	}
	if q.UserID > 0 {
		query = query.Where("user_id = ?", q.UserID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "id ASC"
	if q.Desc {
		order = "id DESC"
	}
	var comments []*model.Comment
	err := query.Order(order).Limit(q.Limit).Offset(q.Offset).Find(&comments).Error
	return comments, total, err
}

func (s *CommentRepoImpl) CountBefore(ctx context.Context, parent model.Ref, id uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Scopes(ScopeActive.apply).
		Where("commentable_type = ? AND commentable_id = ? AND id < ?", parent.Kind, parent.ID, id).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) CountActive(ctx context.Context, parent model.Ref) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Scopes(ScopeActive.apply).
		Where("commentable_type = ? AND commentable_id = ?", parent.Kind, parent.ID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) FindEntity(ctx context.Context, id uint64, scope Scope) (model.Trashable, error) {
	comment, err := s.Get(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// SetTrashed 放入/移出回收站，父对象 comments_count 同事务 -1/+1
func (s *CommentRepoImpl) SetTrashed(ctx context.Context, id uint64, trashed bool) (model.Trashable, bool, error) {
	var comment model.Comment
	changed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&comment).Error; err != nil {
			return err
		}
		var err error
		changed, err = flipTrashed(tx, comment.TableName(), id, trashed)
		if err != nil || !changed {
			return err
		}
		delta := 1
		if trashed {
			delta = -1
		}
		return addCounter(tx, comment.Parent(), colCommentsCount, delta)
	})
	if err != nil {
		return nil, false, err
	}
	comment.Trashed = trashed
	return &comment, changed, nil
}

// Destroy 物理删除；只有未在回收站的评论才会让父对象计数 -1
func (s *CommentRepoImpl) Destroy(ctx context.Context, id uint64) (model.Trashable, bool, error) {
	var comment model.Comment
	wasTrashed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&comment).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND trashed = ?", id, false).Delete(&model.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			res = tx.Where("id = ?", id).Delete(&model.Comment{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			wasTrashed = true
		}

		if err := tx.Where("likeable_type = ? AND likeable_id = ?", model.KindComment, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if wasTrashed {
			return nil
		}
		return addCounter(tx, comment.Parent(), colCommentsCount, -1)
	})
	if err != nil {
		return nil, false, err
	}
	comment.Trashed = wasTrashed
	return &comment, wasTrashed, nil
}
