package repository

import "gorm.io/gorm"

// Scope 软删除查询范围
type Scope int8

const (
	// ScopeActive 默认范围，排除已放入回收站的记录
	ScopeActive Scope = iota
	// ScopeWithTrashed 包含回收站记录，用于管理后台与作者编辑/恢复
	ScopeWithTrashed
	// ScopeTrashedOnly 仅回收站记录
	ScopeTrashedOnly
)

func (s Scope) apply(db *gorm.DB) *gorm.DB {
	switch s {
	case ScopeWithTrashed:
		return db
	case ScopeTrashedOnly:
		return db.Where("trashed = ?", true)
	default:
		return db.Where("trashed = ?", false)
	}
}
