package repository

import (
	"Touchline/internal/model"
	"context"
)

// EntityRepo 可软删除内容的统一存储入口，按 Kind 注册到 Registry
type EntityRepo interface {
	Kind() model.Kind
	FindEntity(ctx context.Context, id uint64, scope Scope) (model.Trashable, error)
	// SetTrashed 翻转回收站标记，计数变化与标记在同一事务内完成；重复调用返回 changed=false
	SetTrashed(ctx context.Context, id uint64, trashed bool) (entity model.Trashable, changed bool, err error)
	// Destroy 物理删除，返回被删除的记录以及删除前是否已在回收站
	Destroy(ctx context.Context, id uint64) (entity model.Trashable, wasTrashed bool, err error)
}

// RankRepo 带热度列的存储
type RankRepo interface {
	Reload(ctx context.Context, id uint64) (model.Rankable, error)
	UpdateHot(ctx context.Context, id uint64, hot float64) error
}

// Registry Kind -> 存储 的查找表
type Registry struct {
	repos map[model.Kind]EntityRepo
}

func NewRegistry(repos ...EntityRepo) *Registry {
	r := &Registry{repos: make(map[model.Kind]EntityRepo, len(repos))}
	for _, repo := range repos {
		r.repos[repo.Kind()] = repo
	}
	return r
}

// Lookup 根据类型标识找到对应的存储
func (r *Registry) Lookup(kind model.Kind) (EntityRepo, error) {
	repo, ok := r.repos[kind]
	if !ok {
		return nil, model.ErrUnknownKind
	}
	return repo, nil
}

// Ranker 类型是否带热度列
func (r *Registry) Ranker(kind model.Kind) (RankRepo, bool) {
	repo, ok := r.repos[kind]
	if !ok {
		return nil, false
	}
	rr, ok := repo.(RankRepo)
	return rr, ok
}

// Find 解析多态引用
func (r *Registry) Find(ctx context.Context, ref model.Ref, scope Scope) (model.Trashable, error) {
	repo, err := r.Lookup(ref.Kind)
	if err != nil {
		return nil, err
	}
	return repo.FindEntity(ctx, ref.ID, scope)
}
