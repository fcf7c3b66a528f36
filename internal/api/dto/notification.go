package dto

// NotificationDTO 通知返回对象
type NotificationDTO struct {
	ID          string `json:"id"`
	SenderID    uint64 `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	Type        int8   `json:"type"` // 1-回复, 2-提及
	SubjectType string `json:"subject_type"`
	SubjectID   uint64 `json:"subject_id"`
	TargetType  string `json:"target_type"`
	TargetID    uint64 `json:"target_id"`
	Content     string `json:"content"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

// NotificationUnreadDTO 未读数返回
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}
