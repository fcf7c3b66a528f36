package repository

import (
	"Touchline/internal/model"
	"context"

	"gorm.io/gorm"
)

type AttachmentRepo interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	Get(ctx context.Context, id uint64) (*model.Attachment, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, limit, offset int) ([]*model.Attachment, int64, error)
}

type AttachmentRepoImpl struct {
	db *gorm.DB
}

func NewAttachmentRepo(db *gorm.DB) AttachmentRepo {
	return &AttachmentRepoImpl{db}
}

func (s *AttachmentRepoImpl) Create(ctx context.Context, attachment *model.Attachment) error {
	return s.db.WithContext(ctx).Create(attachment).Error
}

func (s *AttachmentRepoImpl) Get(ctx context.Context, id uint64) (*model.Attachment, error) {
	var attachment model.Attachment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *AttachmentRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Attachment{}).Error
}

func (s *AttachmentRepoImpl) List(ctx context.Context, limit, offset int) ([]*model.Attachment, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Attachment{}).Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []*model.Attachment
	err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
