package model

import (
	"time"
)

type Comment struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	UserID          uint64    `gorm:"not null;index" json:"userId"`
	CommentableType Kind      `gorm:"type:varchar(32);not null;index:idx_comments_commentable,priority:1" json:"commentableType"`
	CommentableID   uint64    `gorm:"not null;index:idx_comments_commentable,priority:2" json:"commentableId"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	LikesCount      int       `gorm:"not null;default:0" json:"likesCount"`
	Trashed         bool      `gorm:"not null;default:false;index" json:"trashed"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) Ref() Ref {
	return Ref{Kind: KindComment, ID: c.ID}
}

// Parent 所属的被评论对象
func (c *Comment) Parent() Ref {
	return Ref{Kind: c.CommentableType, ID: c.CommentableID}
}

func (c *Comment) LikeTotal() int { return c.LikesCount }
func (c *Comment) OwnerID() uint64 { return c.UserID }
func (c *Comment) IsTrashed() bool { return c.Trashed }
