package mongo

import (
	"Touchline/internal/pkg/consts"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PushRepo interface {
	Create(ctx context.Context, push *PushModel) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*PushModel, error)
	List(ctx context.Context, limit, offset int64) ([]*PushModel, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status int8, errMsg string) error
}

type pushRepoImpl struct {
	col *mongo.Collection
}

func NewPushRepo(db *mongo.Database) PushRepo {
	return &pushRepoImpl{
		col: db.Collection(PushCollection),
	}
}

func (s *pushRepoImpl) Create(ctx context.Context, push *PushModel) error {
	if push.CreatedAt.IsZero() {
		push.CreatedAt = time.Now()
	}
	result, err := s.col.InsertOne(ctx, push)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		push.ID = oid
	}
	return nil
}

func (s *pushRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*PushModel, error) {
	var push PushModel
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&push); err != nil {
		return nil, err
	}
	return &push, nil
}

func (s *pushRepoImpl) List(ctx context.Context, limit, offset int64) ([]*PushModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*PushModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *pushRepoImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status int8, errMsg string) error {
	set := bson.M{"status": status, "error": errMsg}
	if status == consts.PushStatusSent {
		set["sent_at"] = time.Now()
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
