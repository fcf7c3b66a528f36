package handler

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/api/middleware"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	userSvc service.UserService
}

func NewSessionHandler(userSvc service.UserService) *SessionHandler {
	return &SessionHandler{userSvc: userSvc}
}

// LoginPage 登录页只做限流检查，返回当前登录状态
func (s *SessionHandler) LoginPage(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		response.Success(c, service.ToUserDTO(user))
		return
	}
	response.Success(c, nil)
}

func (s *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = middleware.LoginAs(c, user.ID, user.RememberToken); err != nil {
		log.ErrorContext(c.Request.Context(), "save session error", "user_id", user.ID, "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}
	response.Success(c, service.ToUserDTO(user))
}

func (s *SessionHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		log.ErrorContext(c.Request.Context(), "clear session error", "err", err)
	}
	response.Success(c, nil)
}

// AppLogin App 登录：返回 remember_token 与 JWT，不写 session
func (s *SessionHandler) AppLogin(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	session, err := s.userSvc.IssueAppSession(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}
