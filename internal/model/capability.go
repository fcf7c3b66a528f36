package model

import "time"

// Entity 可以被多态引用的记录
type Entity interface {
	Ref() Ref
}

// Likeable 可点赞
type Likeable interface {
	Entity
	LikeTotal() int
}

// Commentable 可评论，OwnerID 为 0 表示没有归属用户
type Commentable interface {
	Entity
	CommentTotal() int
	OwnerID() uint64
}

// Trashable 可软删除
type Trashable interface {
	Entity
	IsTrashed() bool
	OwnerID() uint64
}

// Rankable 参与热度排序
type Rankable interface {
	Commentable
	CreatedTime() time.Time
}
