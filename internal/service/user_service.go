package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/security"
	"Touchline/internal/pkg/util"
	"Touchline/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*model.User, error)
	CheckEmail(ctx context.Context, email string, excludeID uint64) (bool, error)
	CheckUsername(ctx context.Context, username string, excludeID uint64) (bool, error)
	// Authenticate login 含 @ 时按邮箱查找，否则按用户名，均忽略大小写
	Authenticate(ctx context.Context, login, password string) (*model.User, error)
	IssueAppSession(ctx context.Context, user *model.User) (*dto.AppSessionDTO, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByRememberToken(ctx context.Context, token string) (*model.User, error)
	UpdateAccount(ctx context.Context, user *model.User, req *dto.AccountDTO) (*dto.UserDTO, error)
	UpdatePassword(ctx context.Context, user *model.User, req *dto.PasswordDTO) error

	List(ctx context.Context, lockedOnly bool, page int) (*dto.UserListDTO, error)
	Lock(ctx context.Context, actor *model.User, id uint64) error
	Unlock(ctx context.Context, actor *model.User, id uint64) error
	// Destroy 只删除用户记录，发布的内容保留
	Destroy(ctx context.Context, actor *model.User, id uint64) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
	perPage  int
}

func NewUserService(userRepo repository.UserRepo, perPage int) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		perPage:  perPage,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	v := &validator{}
	v.check(username != "", "用户名不能为空")
	v.check(email != "", "邮箱不能为空")
	v.check(len(req.Password) >= 6, "密码至少 6 位")
	v.check(req.Password == req.PasswordConfirmation, "两次输入的密码不一致")
	if username != "" {
		exists, err := s.userRepo.ExistsUsername(ctx, username, 0)
		if err != nil {
			return nil, err
		}
		v.check(!exists, ErrUserUsernameExist.Error())
	}
	if email != "" {
		exists, err := s.userRepo.ExistsEmail(ctx, email, 0)
		if err != nil {
			return nil, err
		}
		v.check(!exists, ErrUserEmailExist.Error())
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	digest, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:       username,
		Email:          email,
		Name:           strings.TrimSpace(req.Name),
		PasswordDigest: digest,
		RememberToken:  security.NewRememberToken(),
	}
	if user.Name == "" {
		user.Name = username
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if repository.IsDuplicateError(err) {
			return nil, NewValidationError("用户名或邮箱已被注册")
		}
		return nil, err
	}
	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *UserServiceImpl) CheckEmail(ctx context.Context, email string, excludeID uint64) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, ErrParamInvalid
	}
	exists, err := s.userRepo.ExistsEmail(ctx, email, excludeID)
	return !exists, err
}

func (s *UserServiceImpl) CheckUsername(ctx context.Context, username string, excludeID uint64) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, ErrParamInvalid
	}
	exists, err := s.userRepo.ExistsUsername(ctx, username, excludeID)
	return !exists, err
}

func (s *UserServiceImpl) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrMissingLoginCredentials
	}
	var (
		user *model.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetUserByEmail(ctx, login)
	} else {
		user, err = s.userRepo.GetUserByUsername(ctx, login)
	}
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err = security.CheckPasswordHash(password, user.PasswordDigest); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) IssueAppSession(ctx context.Context, user *model.User) (*dto.AppSessionDTO, error) {
	token, err := security.GenerateToken(user.ID, user.Admin)
	if err != nil {
		log.ErrorContext(ctx, "generate app token error", "user_id", user.ID, "err", err)
		return nil, UnExpectedError
	}
	return &dto.AppSessionDTO{
		User:          ToUserDTO(user),
		RememberToken: user.RememberToken,
		Token:         token,
	}, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetByRememberToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetUserByRememberToken(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateAccount(ctx context.Context, user *model.User, req *dto.AccountDTO) (*dto.UserDTO, error) {
	if err := security.CheckPasswordHash(req.CurrentPassword, user.PasswordDigest); err != nil {
		return nil, ErrPasswordIncorrect
	}
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsUsername(ctx, username, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserUsernameExist
	}
	exists, err = s.userRepo.ExistsEmail(ctx, email, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserEmailExist
	}

	if err = s.userRepo.UpdateAccount(ctx, user.ID, username, email); err != nil {
		if repository.IsDuplicateError(err) {
			return nil, ErrUserUsernameExist
		}
		return nil, err
	}
	user.Username = username
	user.Email = email
	return ToUserDTO(user), nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, user *model.User, req *dto.PasswordDTO) error {
	if err := security.CheckPasswordHash(req.CurrentPassword, user.PasswordDigest); err != nil {
		return ErrPasswordIncorrect
	}
	v := &validator{}
	v.check(len(req.Password) >= 6, "密码至少 6 位")
	v.check(req.Password == req.PasswordConfirmation, "两次输入的密码不一致")
	if err := v.err(); err != nil {
		return err
	}
	digest, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err = s.userRepo.UpdatePassword(ctx, user.ID, digest); err != nil {
		return err
	}
	user.PasswordDigest = digest
	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, lockedOnly bool, page int) (*dto.UserListDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	users, total, err := s.userRepo.List(ctx, lockedOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		res = append(res, ToUserDTO(u))
	}
	return &dto.UserListDTO{PageDTO: newPage(page, s.perPage, total), Users: res}, nil
}

func (s *UserServiceImpl) target(ctx context.Context, actor *model.User, id uint64, selfErr, adminErr error) (*model.User, error) {
	if actor.ID == id {
		return nil, selfErr
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Admin {
		return nil, adminErr
	}
	return user, nil
}

func (s *UserServiceImpl) Lock(ctx context.Context, actor *model.User, id uint64) error {
	user, err := s.target(ctx, actor, id, ErrUserLockSelf, ErrUserLockAdmin)
	if err != nil {
		return err
	}
	if user.IsLocked() {
		return nil
	}
	now := time.Now()
	return s.userRepo.SetLocked(ctx, id, &now)
}

func (s *UserServiceImpl) Unlock(ctx context.Context, actor *model.User, id uint64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.SetLocked(ctx, id, nil)
}

func (s *UserServiceImpl) Destroy(ctx context.Context, actor *model.User, id uint64) error {
	if _, err := s.target(ctx, actor, id, ErrUserDeleteSelf, ErrUserDeleteAdmin); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	log.InfoContext(ctx, "user destroyed", "user_id", id, "actor", actor.ID)
	return nil
}
