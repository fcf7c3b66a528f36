package dto

import "time"

type TopicCreateDTO struct {
	CategoryID uint64 `json:"category_id" binding:"required"`
	Title      string `json:"title" binding:"required,max=255"`
	Body       string `json:"body" binding:"required"`
}

// TopicListQuery 话题列表查询参数
type TopicListQuery struct {
	Slug    string `form:"slug"`
	Tab     string `form:"tab" binding:"omitempty,oneof=hot newest"`
	Page    int    `form:"page"`
	NoFlash bool   `form:"noflash"`
}

type TopicDTO struct {
	ID            uint64    `json:"id"`
	Kind          string    `json:"type"`
	Section       string    `json:"section"`
	UserID        uint64    `json:"user_id"`
	Username      string    `json:"username"`
	CategoryID    uint64    `json:"category_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body,omitempty"`
	Preview       string    `json:"preview"`
	HasFlash      bool      `json:"hasflash"`
	Hot           float64   `json:"hot"`
	CommentsCount int       `json:"comments_count"`
	LikesCount    int       `json:"likes_count"`
	Trashed       bool      `json:"trashed"`
	Liked         bool      `json:"liked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TopicListDTO struct {
	PageDTO
	Category *CategoryDTO `json:"category,omitempty"`
	Tab      string       `json:"tab,omitempty"`
	Topics   []*TopicDTO  `json:"topics"`
}

// TopicDetailDTO 话题详情与当前页评论
type TopicDetailDTO struct {
	Topic    *TopicDTO       `json:"topic"`
	Category *CategoryDTO    `json:"category,omitempty"`
	Comments *CommentPageDTO `json:"comments"`
}

// HotFeedDTO 首页热门话题
type HotFeedDTO struct {
	Topics    []*TopicDTO `json:"topics"`
	NbaTopics []*TopicDTO `json:"nba_topics"`
}
