package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/repository"
	"context"
	"strings"
)

type CategoryService interface {
	List(ctx context.Context, group *model.Section) ([]*dto.CategoryDTO, error)
	GetBySlug(ctx context.Context, slug string) (*dto.CategoryDTO, error)
	Create(ctx context.Context, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error)
	Update(ctx context.Context, id uint64, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *categoryServiceImpl) List(ctx context.Context, group *model.Section) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.List(ctx, group)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		res = append(res, toCategoryDTO(c))
	}
	return res, nil
}

func (s *categoryServiceImpl) GetBySlug(ctx context.Context, slug string) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return toCategoryDTO(category), nil
}

func (s *categoryServiceImpl) build(ctx context.Context, id uint64, req *dto.CategoryCreateDTO) (*model.Category, error) {
	v := &validator{}
	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)
	v.check(name != "", "分类名称不能为空")
	v.check(slug != "", "分类标识不能为空")
	v.check(req.Group != nil && *req.Group >= 0 && *req.Group <= 2, "板块取值错误")
	if err := v.err(); err != nil {
		return nil, err
	}
	exists, err := s.categoryRepo.ExistsSlug(ctx, slug, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategorySlugExist
	}
	return &model.Category{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Group:       model.Section(*req.Group),
		Description: strings.TrimSpace(req.Description),
	}, nil
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error) {
	category, err := s.build(ctx, 0, req)
	if err != nil {
		return nil, err
	}
	if err = s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsDuplicateError(err) {
			return nil, ErrCategorySlugExist
		}
		return nil, err
	}
	return toCategoryDTO(category), nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id uint64, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error) {
	if _, err := s.categoryRepo.Get(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category, err := s.build(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if err = s.categoryRepo.Update(ctx, category); err != nil {
		if repository.IsDuplicateError(err) {
			return nil, ErrCategorySlugExist
		}
		return nil, err
	}
	updated, err := s.categoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(updated), nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id uint64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
