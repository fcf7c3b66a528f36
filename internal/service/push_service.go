package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/push"
	"Touchline/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type PushService interface {
	// Create 写入待发送记录后入队，不等待投递结果
	Create(ctx context.Context, req *dto.PushCreateDTO) (*dto.PushDTO, error)
	List(ctx context.Context, page int) ([]*dto.PushDTO, error)
	// Dispatch 由队列消费者调用，只处理待发送状态的记录
	Dispatch(ctx context.Context, pushID string) error
}

type pushServiceImpl struct {
	pushRepo   mongo.PushRepo
	deviceRepo mongo.DeviceRepo
	queue      PushQueue
	client     push.Client
	perPage    int
}

func NewPushService(pushRepo mongo.PushRepo, deviceRepo mongo.DeviceRepo, queue PushQueue, client push.Client, perPage int) PushService {
	return &pushServiceImpl{
		pushRepo:   pushRepo,
		deviceRepo: deviceRepo,
		queue:      queue,
		client:     client,
		perPage:    perPage,
	}
}

func toPushDTO(m *mongo.PushModel) *dto.PushDTO {
	d := &dto.PushDTO{}
	_ = copier.Copy(d, m)
	d.ID = m.ID.Hex()
	d.AppID = m.AppID.Hex()
	return d
}

func (s *pushServiceImpl) Create(ctx context.Context, req *dto.PushCreateDTO) (*dto.PushDTO, error) {
	appID, err := primitive.ObjectIDFromHex(req.AppID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	if _, err = s.deviceRepo.GetByID(ctx, appID); err != nil {
		return nil, deviceErr(err)
	}

	record := &mongo.PushModel{
		AppID:   appID,
		Title:   req.Title,
		Content: req.Content,
		Status:  consts.PushStatusPending,
	}
	if err = s.pushRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	if err = s.queue.Enqueue(ctx, record.ID.Hex()); err != nil {
		log.ErrorContext(ctx, "enqueue push error", "push_id", record.ID.Hex(), "err", err)
		record.Status = consts.PushStatusFailed
		record.Error = err.Error()
		_ = s.pushRepo.UpdateStatus(ctx, record.ID, record.Status, record.Error)
		return nil, UnExpectedError
	}
	return toPushDTO(record), nil
}

func (s *pushServiceImpl) List(ctx context.Context, page int) ([]*dto.PushDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	list, err := s.pushRepo.List(ctx, int64(limit), int64(offset))
	if err != nil {
		return nil, err
	}
	res := make([]*dto.PushDTO, 0, len(list))
	for _, m := range list {
		res = append(res, toPushDTO(m))
	}
	return res, nil
}

// Dispatch 网关失败记为失败状态且不再重试，存储错误原样返回交由消费者重试
func (s *pushServiceImpl) Dispatch(ctx context.Context, pushID string) error {
	id, err := primitive.ObjectIDFromHex(pushID)
	if err != nil {
		log.WarnContext(ctx, "invalid push id", "push_id", pushID)
		return nil
	}
	record, err := s.pushRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			log.WarnContext(ctx, "push record not found", "push_id", pushID)
			return nil
		}
		return err
	}
	if record.Status != consts.PushStatusPending {
		return nil
	}

	device, err := s.deviceRepo.GetByID(ctx, record.AppID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return s.pushRepo.UpdateStatus(ctx, id, consts.PushStatusSkipped, ErrDeviceNotFound.Error())
		}
		return err
	}
	if device.Freeze {
		log.InfoContext(ctx, "device frozen, skip push", "push_id", pushID, "appid", device.ID.Hex())
		return s.pushRepo.UpdateStatus(ctx, id, consts.PushStatusSkipped, "device frozen")
	}

	msg := &push.Message{
		Token:   device.IDString,
		Title:   record.Title,
		Content: record.Content,
		PushID:  pushID,
	}
	if err = s.client.Send(ctx, device.Type, msg); err != nil {
		log.ErrorContext(ctx, "push gateway error", "push_id", pushID, "err", err)
		return s.pushRepo.UpdateStatus(ctx, id, consts.PushStatusFailed, err.Error())
	}
	return s.pushRepo.UpdateStatus(ctx, id, consts.PushStatusSent, "")
}
