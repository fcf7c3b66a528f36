package model

import (
	"time"
)

// Match 比赛，MongoID 指向外部赛程库中的文档
type Match struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	MongoID       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_matches_mongo_id" json:"mongoId"`
	Time          time.Time `json:"time"`
	MType         string    `gorm:"column:mtype;type:varchar(32);not null;default:''" json:"mtype"`
	Hot           float64   `gorm:"not null;default:0;index" json:"hot"`
	CommentsCount int       `gorm:"not null;default:0" json:"commentsCount"`
	LikesCount    int       `gorm:"not null;default:0" json:"likesCount"`
	Trashed       bool      `gorm:"not null;default:false;index" json:"trashed"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Match) TableName() string {
	return "matches"
}

func (m *Match) Ref() Ref {
	return Ref{Kind: KindMatch, ID: m.ID}
}

func (m *Match) LikeTotal() int { return m.LikesCount }
func (m *Match) CommentTotal() int { return m.CommentsCount }
func (m *Match) OwnerID() uint64 { return 0 }
func (m *Match) IsTrashed() bool { return m.Trashed }
func (m *Match) CreatedTime() time.Time { return m.CreatedAt }
