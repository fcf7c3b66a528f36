package dto

// LikeDTO 点赞状态
type LikeDTO struct {
	Type       string `json:"type"`
	ID         uint64 `json:"id"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likes_count"`
}
