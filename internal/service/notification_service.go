package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/util"
	"Touchline/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	List(ctx context.Context, userID uint64, page int) ([]*dto.NotificationDTO, error)
	UnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkAllRead(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, userID uint64, id string) error
	Clear(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
	userRepo         repository.UserRepo
	perPage          int
}

func NewNotificationService(notificationRepo mongo.NotificationRepo, userRepo repository.UserRepo, perPage int) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		perPage:          perPage,
	}
}

// List 获取通知列表并补全发送者用户名
func (s *notificationServiceImpl) List(ctx context.Context, userID uint64, page int) ([]*dto.NotificationDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	list, err := s.notificationRepo.GetNotificationList(ctx, userID, int64(limit), int64(offset))
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint64, 0, len(list))
	for _, m := range list {
		senderIDs = append(senderIDs, m.SenderID)
	}
	names := usernames(ctx, s.userRepo, senderIDs)

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		d := &dto.NotificationDTO{}
		_ = copier.Copy(d, m)
		d.ID = m.ID.Hex()
		d.SenderName = names[m.SenderID]
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
		res = append(res, d)
	}
	return res, nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

// Delete 只能删除自己的通知
func (s *notificationServiceImpl) Delete(ctx context.Context, userID uint64, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrParamInvalid
	}
	if err = s.notificationRepo.Delete(ctx, userID, objectID); err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationServiceImpl) Clear(ctx context.Context, userID uint64) error {
	return s.notificationRepo.DeleteAll(ctx, userID)
}
