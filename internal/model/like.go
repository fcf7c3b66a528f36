package model

import (
	"time"
)

// Like (user_id, likeable_type, likeable_id) 唯一
type Like struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_likes_user_likeable,priority:1" json:"userId"`
	LikeableType Kind      `gorm:"type:varchar(32);not null;uniqueIndex:idx_likes_user_likeable,priority:2;index:idx_likes_likeable,priority:1" json:"likeableType"`
	LikeableID   uint64    `gorm:"not null;uniqueIndex:idx_likes_user_likeable,priority:3;index:idx_likes_likeable,priority:2" json:"likeableId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) Target() Ref {
	return Ref{Kind: l.LikeableType, ID: l.LikeableID}
}
