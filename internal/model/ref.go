package model

import (
	"errors"
	"strconv"
	"strings"
)

// Kind 多态引用的类型标识，与数据库中的 *_type 列取值一致
type Kind string

const (
	KindTopic       Kind = "Topic"
	KindNbaTopic    Kind = "NbaTopic"
	KindTennisTopic Kind = "TennisTopic"
	KindMatch       Kind = "Match"
	KindComment     Kind = "Comment"
)

var ErrUnknownKind = errors.New("unknown kind")

var kindTables = map[Kind]string{
	KindTopic:       "topics",
	KindNbaTopic:    "nba_topics",
	KindTennisTopic: "tennis_topics",
	KindMatch:       "matches",
	KindComment:     "comments",
}

// ParseKind 解析类型标识，同时接受表名形式（topics / nba_topics ...）
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kindTables[k]; ok {
		return k, nil
	}
	for kind, table := range kindTables {
		if table == s {
			return kind, nil
		}
	}
	return "", ErrUnknownKind
}

// Table 类型对应的存储表
func (k Kind) Table() string {
	return kindTables[k]
}

// Commentable 可被评论的类型
func (k Kind) Commentable() bool {
	switch k {
	case KindTopic, KindNbaTopic, KindTennisTopic, KindMatch:
		return true
	}
	return false
}

// Likeable 可被点赞的类型
func (k Kind) Likeable() bool {
	_, ok := kindTables[k]
	return ok
}

// IsTopic 是否为三种话题之一
func (k Kind) IsTopic() bool {
	_, ok := SectionOfKind(k)
	return ok
}

// Ref 多态引用 (type, id)
type Ref struct {
	Kind Kind   `json:"type"`
	ID   uint64 `json:"id"`
}

func NewRef(kind Kind, id uint64) Ref {
	return Ref{Kind: kind, ID: id}
}

func (r Ref) String() string {
	return string(r.Kind) + ":" + strconv.FormatUint(r.ID, 10)
}

func (r Ref) IsZero() bool {
	return r.Kind == "" || r.ID == 0
}

// ParseRef 解析 Ref.String() 的输出 "Kind:id"
func ParseRef(s string) (Ref, error) {
	kind, id, ok := strings.Cut(s, ":")
	if !ok {
		return Ref{}, ErrUnknownKind
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Ref{}, err
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return Ref{}, err
	}
	return NewRef(k, n), nil
}
