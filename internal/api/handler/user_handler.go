package handler

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/api/middleware"
	"Touchline/internal/model"
	"Touchline/internal/pkg/response"
	"Touchline/internal/pkg/util"
	"Touchline/internal/service"
	"context"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 网页注册，成功后直接登录
func (s *UserHandler) Register(c *gin.Context) {
	result, ok := s.register(c)
	if !ok {
		return
	}
	if err := middleware.LoginAs(c, result.ID, result.RememberToken); err != nil {
		log.ErrorContext(c.Request.Context(), "save session error", "user_id", result.ID, "err", err)
	}
	response.Success(c, result)
}

// AppRegister App 注册，只返回 id 与 remember_token
func (s *UserHandler) AppRegister(c *gin.Context) {
	if result, ok := s.register(c); ok {
		response.Success(c, result)
	}
}

// register 表单格式错误与用户名 / 邮箱冲突分两轮收集，每轮返回全部信息
func (s *UserHandler) register(c *gin.Context) (*dto.RegisterResultDTO, bool) {
	var req dto.RegisterDTO
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		response.Fail(c, response.BadRequest, "Json错误")
		return nil, false
	}
	if messages := util.ValidateDTO(&req); len(messages) > 0 {
		response.Invalid(c, messages)
		return nil, false
	}
	user, err := s.userSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return &dto.RegisterResultDTO{ID: user.ID, RememberToken: user.RememberToken}, true
}

func (s *UserHandler) CheckEmail(c *gin.Context) {
	available, err := s.userSvc.CheckEmail(c.Request.Context(), c.Query("email"), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AvailabilityDTO{Available: available})
}

func (s *UserHandler) CheckUsername(c *gin.Context) {
	available, err := s.userSvc.CheckUsername(c.Request.Context(), c.Query("username"), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AvailabilityDTO{Available: available})
}

func (s *UserHandler) GetAccount(c *gin.Context) {
	response.Success(c, service.ToUserDTO(middleware.CurrentUser(c)))
}

func (s *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.AccountDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.UpdateAccount(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) UpdatePassword(c *gin.Context) {
	var req dto.PasswordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.UpdatePassword(c.Request.Context(), middleware.CurrentUser(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) AdminList(c *gin.Context) {
	s.adminList(c, false)
}

func (s *UserHandler) AdminLocked(c *gin.Context) {
	s.adminList(c, true)
}

func (s *UserHandler) adminList(c *gin.Context, lockedOnly bool) {
	users, err := s.userSvc.List(c.Request.Context(), lockedOnly, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserHandler) AdminShow(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, service.ToUserDTO(user))
}

func (s *UserHandler) Lock(c *gin.Context) {
	s.adminAction(c, s.userSvc.Lock)
}

func (s *UserHandler) Unlock(c *gin.Context) {
	s.adminAction(c, s.userSvc.Unlock)
}

func (s *UserHandler) Destroy(c *gin.Context) {
	s.adminAction(c, s.userSvc.Destroy)
}

func (s *UserHandler) adminAction(c *gin.Context, action func(context.Context, *model.User, uint64) error) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = action(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
