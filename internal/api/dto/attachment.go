package dto

import "time"

type AttachmentDTO struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	URL         string    `json:"url"`
	PreviewURL  string    `json:"preview_url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type AttachmentListDTO struct {
	PageDTO
	Attachments []*AttachmentDTO `json:"attachments"`
}
