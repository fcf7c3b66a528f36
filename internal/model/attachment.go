package model

import (
	"time"
)

// Attachment 上传的图片，Preview 为 200x77 缩略图
type Attachment struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"userId"`
	File        string    `gorm:"type:varchar(255);not null" json:"file"`
	Preview     string    `gorm:"type:varchar(255);not null;default:''" json:"preview"`
	ContentType string    `gorm:"type:varchar(64);not null;default:''" json:"contentType"`
	Size        int64     `gorm:"not null;default:0" json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Attachment) TableName() string {
	return "attachments"
}
