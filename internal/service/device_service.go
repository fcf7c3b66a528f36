package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/util"
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type DeviceService interface {
	// Register 按 idstring 登记设备，已存在时刷新版本信息和最后登录时间
	Register(ctx context.Context, req *dto.DeviceDTO) (*dto.DeviceDTO, error)
	List(ctx context.Context, page int) (*dto.DeviceListDTO, error)
	Freeze(ctx context.Context, id string, freeze bool) error
	Delete(ctx context.Context, id string) error
}

type deviceServiceImpl struct {
	deviceRepo mongo.DeviceRepo
	perPage    int
}

func NewDeviceService(deviceRepo mongo.DeviceRepo, perPage int) DeviceService {
	return &deviceServiceImpl{
		deviceRepo: deviceRepo,
		perPage:    perPage,
	}
}

func toDeviceDTO(m *mongo.DeviceModel) *dto.DeviceDTO {
	d := &dto.DeviceDTO{}
	_ = copier.Copy(d, m)
	d.ID = m.ID.Hex()
	return d
}

func (s *deviceServiceImpl) Register(ctx context.Context, req *dto.DeviceDTO) (*dto.DeviceDTO, error) {
	device := &mongo.DeviceModel{
		IDString:   req.IDString,
		Type:       req.Type,
		AppVer:     req.AppVer,
		OSVer:      req.OSVer,
		DeviceInfo: req.DeviceInfo,
	}
	if err := s.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceDTO(device), nil
}

func (s *deviceServiceImpl) List(ctx context.Context, page int) (*dto.DeviceListDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	list, total, err := s.deviceRepo.List(ctx, int64(limit), int64(offset))
	if err != nil {
		return nil, err
	}
	res := make([]*dto.DeviceDTO, 0, len(list))
	for _, m := range list {
		res = append(res, toDeviceDTO(m))
	}
	return &dto.DeviceListDTO{PageDTO: newPage(page, s.perPage, total), Devices: res}, nil
}

func (s *deviceServiceImpl) Freeze(ctx context.Context, id string, freeze bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrParamInvalid
	}
	return deviceErr(s.deviceRepo.SetFreeze(ctx, objectID, freeze))
}

func (s *deviceServiceImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrParamInvalid
	}
	return deviceErr(s.deviceRepo.Delete(ctx, objectID))
}

func deviceErr(err error) error {
	if errors.Is(err, mongoDB.ErrNoDocuments) {
		return ErrDeviceNotFound
	}
	return err
}
