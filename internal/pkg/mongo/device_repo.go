package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DeviceRepo interface {
	// Upsert 按 idstring 登记设备，已存在时更新信息与 last_login
	Upsert(ctx context.Context, device *DeviceModel) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*DeviceModel, error)
	List(ctx context.Context, limit, offset int64) ([]*DeviceModel, int64, error)
	SetFreeze(ctx context.Context, id primitive.ObjectID, freeze bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type deviceRepoImpl struct {
	col *mongo.Collection
}

func NewDeviceRepo(db *mongo.Database) DeviceRepo {
	return &deviceRepoImpl{
		col: db.Collection(DeviceCollection),
	}
}

func (s *deviceRepoImpl) Upsert(ctx context.Context, device *DeviceModel) error {
	device.LastLogin = time.Now()
	filter := bson.M{"idstring": device.IDString}
	update := bson.M{
		"$set": bson.M{
			"type":        device.Type,
			"app_ver":     device.AppVer,
			"os_ver":      device.OSVer,
			"device_info": device.DeviceInfo,
			"last_login":  device.LastLogin,
		},
		"$setOnInsert": bson.M{"freeze": false},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	return s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(device)
}

func (s *deviceRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*DeviceModel, error) {
	var device DeviceModel
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&device); err != nil {
		return nil, err
	}
	return &device, nil
}

// List 按最近登录倒序
func (s *deviceRepoImpl) List(ctx context.Context, limit, offset int64) ([]*DeviceModel, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "last_login", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*DeviceModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *deviceRepoImpl) SetFreeze(ctx context.Context, id primitive.ObjectID, freeze bool) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"freeze": freeze}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *deviceRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
