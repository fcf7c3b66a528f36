package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationModel 站内通知
type NotificationModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID  uint64             `bson:"receiver_id" json:"receiverId"`
	SenderID    uint64             `bson:"sender_id" json:"senderId"`
	Type        int8               `bson:"type" json:"type"`                // 1-回复 2-提及
	SubjectType string             `bson:"subject_type" json:"subjectType"` // 触发通知的记录，目前只有 Comment
	SubjectID   uint64             `bson:"subject_id" json:"subjectId"`
	TargetType  string             `bson:"target_type" json:"targetType"` // 评论所在的话题或比赛
	TargetID    uint64             `bson:"target_id" json:"targetId"`
	Content     string             `bson:"content" json:"content"`
	IsRead      bool               `bson:"is_read" json:"isRead"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
