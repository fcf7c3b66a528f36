package repository

import (
	"Touchline/internal/model"

	"gorm.io/gorm"
)

const (
	colCommentsCount = "comments_count"
	colLikesCount    = "likes_count"
)

// addCounter 原子地调整计数列: UPDATE t SET col = col + delta
func addCounter(tx *gorm.DB, ref model.Ref, column string, delta int) error {
	table := ref.Kind.Table()
	if table == "" {
		return model.ErrUnknownKind
	}
	return tx.Table(table).
		Where("id = ?", ref.ID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// addActiveCounter 同 addCounter，但要求目标存在且未被放入回收站
func addActiveCounter(tx *gorm.DB, ref model.Ref, column string, delta int) error {
	table := ref.Kind.Table()
	if table == "" {
		return model.ErrUnknownKind
	}
	res := tx.Table(table).
		Where("id = ? AND trashed = ?", ref.ID, false).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// addCategoryCounter 调整分类在某板块下的话题数
func addCategoryCounter(tx *gorm.DB, section model.Section, categoryID uint64, delta int) error {
	col := section.CounterColumn()
	return tx.Table(model.Category{}.TableName()).
		Where("id = ?", categoryID).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta)).Error
}

// flipTrashed 条件更新 trashed 标记，返回是否真的发生了变化。
// 只改 trashed 一列，放回回收站再恢复后其余字段保持原样
func flipTrashed(tx *gorm.DB, table string, id uint64, trashed bool) (bool, error) {
	res := tx.Table(table).
		Where("id = ? AND trashed = ?", id, !trashed).
		UpdateColumn("trashed", trashed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// deleteChildren 删除某条内容下的全部评论以及相关点赞
func deleteChildren(tx *gorm.DB, parent model.Ref) error {
	var commentIDs []uint64
	if err := tx.Model(&model.Comment{}).
		Where("commentable_type = ? AND commentable_id = ?", parent.Kind, parent.ID).
		Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("likeable_type = ? AND likeable_id IN ?", model.KindComment, commentIDs).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", commentIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("likeable_type = ? AND likeable_id = ?", parent.Kind, parent.ID).
		Delete(&model.Like{}).Error
}
