package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	CreateMany(ctx context.Context, list []*NotificationModel) error
	GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*NotificationModel, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAllAsRead(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, userID uint64, id primitive.ObjectID) error
	DeleteAll(ctx context.Context, userID uint64) error
	// DeleteBySubject 清除由某条记录触发的全部通知
	DeleteBySubject(ctx context.Context, subjectType string, subjectID uint64) (int64, error)
	// DeleteByTarget 清除某个话题或比赛下的全部通知
	DeleteByTarget(ctx context.Context, targetType string, targetID uint64) (int64, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection(NotificationCollection),
	}
}

func (s *notificationRepoImpl) CreateMany(ctx context.Context, list []*NotificationModel) error {
	if len(list) == 0 {
		return nil
	}
	docs := make([]any, 0, len(list))
	for _, n := range list {
		docs = append(docs, n)
	}
	_, err := s.col.InsertMany(ctx, docs)
	return err
}

// GetNotificationList 分页获取用户的通知列表 (按时间倒序)
func (s *notificationRepoImpl) GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*NotificationModel, error) {
	filter := bson.M{"receiver_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*NotificationModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *notificationRepoImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}

func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

func (s *notificationRepoImpl) Delete(ctx context.Context, userID uint64, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "receiver_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *notificationRepoImpl) DeleteAll(ctx context.Context, userID uint64) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"receiver_id": userID})
	return err
}

func (s *notificationRepoImpl) DeleteBySubject(ctx context.Context, subjectType string, subjectID uint64) (int64, error) {
	result, err := s.col.DeleteMany(ctx, bson.M{"subject_type": subjectType, "subject_id": subjectID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (s *notificationRepoImpl) DeleteByTarget(ctx context.Context, targetType string, targetID uint64) (int64, error) {
	result, err := s.col.DeleteMany(ctx, bson.M{"target_type": targetType, "target_id": targetID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
