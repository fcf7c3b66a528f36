package repository

import (
	"Touchline/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

type CategoryRepo interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Category, error)
	// GetBySlug 忽略大小写
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error)
	// List group 为 nil 时返回全部分类
	List(ctx context.Context, group *model.Section) ([]*model.Category, error)
}

type CategoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &CategoryRepoImpl{db}
}

func (s *CategoryRepoImpl) Create(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CategoryRepoImpl) Update(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":        category.Name,
			"slug":        category.Slug,
			"group":       category.Group,
			"description": category.Description,
		}).Error
}

func (s *CategoryRepoImpl) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *CategoryRepoImpl) Get(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryRepoImpl) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).
		Where("LOWER(slug) = ?", strings.ToLower(slug)).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryRepoImpl) ExistsSlug(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Category{}).
		Where("LOWER(slug) = ? AND id <> ?", strings.ToLower(slug), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (s *CategoryRepoImpl) List(ctx context.Context, group *model.Section) ([]*model.Category, error) {
	query := s.db.WithContext(ctx).Model(&model.Category{})
	if group != nil {
		query = query.Where("`group` = ?", *group)
	}
	var categories []*model.Category
	err := query.Order("id ASC").Find(&categories).Error
	return categories, err
}
