package dto

import "time"

type CommentCreateDTO struct {
	Body string `json:"body" binding:"required"`
}

type CommentDTO struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	Username        string    `json:"username"`
	CommentableType string    `json:"commentable_type"`
	CommentableID   uint64    `json:"commentable_id"`
	Body            string    `json:"body"`
	LikesCount      int       `json:"likes_count"`
	Trashed         bool      `json:"trashed"`
	Liked           bool      `json:"liked"`
	Page            int       `json:"page,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CommentPageDTO struct {
	PageDTO
	Comments []*CommentDTO `json:"comments"`
}
