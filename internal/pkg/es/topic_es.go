package es

import "time"

// TopicES 话题索引文档，三个板块共用一个索引，用 section 区分
type TopicES struct {
	Kind       string    `json:"kind"`
	ID         uint64    `json:"id"`
	Section    string    `json:"section"`
	CategoryID uint64    `json:"category_id"`
	UserID     uint64    `json:"user_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Trashed    bool      `json:"trashed"`
	Hot        float64   `json:"hot"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// SyncedAt 读取数据库的时刻，作为外部版本号
	SyncedAt time.Time `json:"synced_at"`
}

// TopicHit 搜索命中，只返回定位信息，正文从数据库取
type TopicHit struct {
	Kind string `json:"kind"`
	ID   uint64 `json:"id"`
}
