package model

import (
	"time"
)

type Category struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(64);not null" json:"name"`
	Slug              string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_categories_slug" json:"slug"`
	Group             Section   `gorm:"column:group;not null;default:0;index" json:"group"`
	Description       string    `gorm:"type:varchar(255);not null;default:''" json:"description"`
	TopicsCount       int       `gorm:"not null;default:0" json:"topicsCount"`
	NbaTopicsCount    int       `gorm:"not null;default:0" json:"nbaTopicsCount"`
	TennisTopicsCount int       `gorm:"not null;default:0" json:"tennisTopicsCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// CountFor 该分类在某个板块下的话题数
func (c *Category) CountFor(s Section) int {
	switch s {
	case SectionNBA:
		return c.NbaTopicsCount
	case SectionTennis:
		return c.TennisTopicsCount
	default:
		return c.TopicsCount
	}
}
