package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PushModel 推送记录，集合 app_pushes
type PushModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppID     primitive.ObjectID `bson:"appid" json:"appid"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Status    int8               `bson:"status" json:"status"` // 0-待发送 1-已发送 2-失败 3-跳过
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	SentAt    *time.Time         `bson:"sent_at,omitempty" json:"sentAt,omitempty"`
}
