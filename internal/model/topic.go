package model

import (
	"time"
)

// Section 话题所属板块，取值与 categories.group 一致
type Section int8

const (
	SectionSoccer Section = 0
	SectionNBA    Section = 1
	SectionTennis Section = 2
)

var sections = []Section{SectionSoccer, SectionNBA, SectionTennis}

// Sections 全部板块
func Sections() []Section {
	return sections
}

// ParseSection 解析路由中的板块名
func ParseSection(s string) (Section, bool) {
	switch s {
	case "topics", "soccer", "":
		return SectionSoccer, true
	case "nba_topics", "nba":
		return SectionNBA, true
	case "tennis_topics", "tennis":
		return SectionTennis, true
	}
	return 0, false
}

// SectionOfKind 话题类型对应的板块
func SectionOfKind(k Kind) (Section, bool) {
	switch k {
	case KindTopic:
		return SectionSoccer, true
	case KindNbaTopic:
		return SectionNBA, true
	case KindTennisTopic:
		return SectionTennis, true
	}
	return 0, false
}

func (s Section) Kind() Kind {
	switch s {
	case SectionNBA:
		return KindNbaTopic
	case SectionTennis:
		return KindTennisTopic
	default:
		return KindTopic
	}
}

func (s Section) Table() string {
	return s.Kind().Table()
}

// CounterColumn categories 表上对应的话题计数列
func (s Section) CounterColumn() string {
	switch s {
	case SectionNBA:
		return "nba_topics_count"
	case SectionTennis:
		return "tennis_topics_count"
	default:
		return "topics_count"
	}
}

func (s Section) String() string {
	switch s {
	case SectionNBA:
		return "nba"
	case SectionTennis:
		return "tennis"
	default:
		return "soccer"
	}
}

// Topic 三个板块共用同一结构，按 Section 落到 topics / nba_topics / tennis_topics
type Topic struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	UserID        uint64    `gorm:"not null;index" json:"userId"`
	CategoryID    uint64    `gorm:"not null;index" json:"categoryId"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	Preview       string    `gorm:"type:varchar(255);not null;default:''" json:"preview"`
	HasFlash      bool      `gorm:"column:hasflash;not null;default:false" json:"hasflash"`
	Hot           float64   `gorm:"not null;default:0;index" json:"hot"`
	CommentsCount int       `gorm:"not null;default:0" json:"commentsCount"`
	LikesCount    int       `gorm:"not null;default:0" json:"likesCount"`
	Trashed       bool      `gorm:"not null;default:false;index" json:"trashed"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Section Section `gorm:"-" json:"section"`
}

func (Topic) TableName() string {
	return "topics"
}

func (t *Topic) Ref() Ref {
	return Ref{Kind: t.Section.Kind(), ID: t.ID}
}

func (t *Topic) LikeTotal() int { return t.LikesCount }
func (t *Topic) CommentTotal() int { return t.CommentsCount }
func (t *Topic) OwnerID() uint64 { return t.UserID }
func (t *Topic) IsTrashed() bool { return t.Trashed }
func (t *Topic) CreatedTime() time.Time { return t.CreatedAt }
