package handler

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"

	"github.com/gin-gonic/gin"
)

// DeviceHandler App 设备登记与后台推送
type DeviceHandler struct {
	deviceSvc service.DeviceService
	pushSvc   service.PushService
}

func NewDeviceHandler(deviceSvc service.DeviceService, pushSvc service.PushService) *DeviceHandler {
	return &DeviceHandler{deviceSvc: deviceSvc, pushSvc: pushSvc}
}

// Register App 启动时上报，idstring 已存在时更新
func (s *DeviceHandler) Register(c *gin.Context) {
	var req dto.DeviceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	device, err := s.deviceSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, device)
}

func (s *DeviceHandler) List(c *gin.Context) {
	devices, err := s.deviceSvc.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, devices)
}

func (s *DeviceHandler) Freeze(c *gin.Context) {
	s.freeze(c, true)
}

func (s *DeviceHandler) Unfreeze(c *gin.Context) {
	s.freeze(c, false)
}

func (s *DeviceHandler) freeze(c *gin.Context, freeze bool) {
	if err := s.deviceSvc.Freeze(c.Request.Context(), c.Param("id"), freeze); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *DeviceHandler) Delete(c *gin.Context) {
	if err := s.deviceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// CreatePush 写入推送记录后立即返回，投递由队列消费者完成
func (s *DeviceHandler) CreatePush(c *gin.Context) {
	var req dto.PushCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	push, err := s.pushSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, push)
}

func (s *DeviceHandler) ListPushes(c *gin.Context) {
	pushes, err := s.pushSvc.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pushes)
}
