package dto

import "time"

// MatchSimplifyDTO 由外部赛程创建比赛，mongo_id 已存在时直接返回
type MatchSimplifyDTO struct {
	MongoID string    `json:"mongo_id" binding:"required,max=64"`
	Time    time.Time `json:"time"`
	MType   string    `json:"mtype" binding:"max=32"`
}

type MatchDTO struct {
	ID            uint64    `json:"id"`
	MongoID       string    `json:"mongo_id"`
	Time          time.Time `json:"time"`
	MType         string    `json:"mtype"`
	Hot           float64   `json:"hot"`
	CommentsCount int       `json:"comments_count"`
	LikesCount    int       `json:"likes_count"`
	Trashed       bool      `json:"trashed"`
	Liked         bool      `json:"liked"`
	CreatedAt     time.Time `json:"created_at"`
}

type MatchListDTO struct {
	PageDTO
	Matches []*MatchDTO `json:"matches"`
}

type MatchDetailDTO struct {
	Match    *MatchDTO       `json:"match"`
	Comments *CommentPageDTO `json:"comments"`
}
