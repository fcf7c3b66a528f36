package repository

import (
	"Touchline/internal/model"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUsersByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	// GetUserByEmail / GetUserByUsername 忽略大小写
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsersByUsernames(ctx context.Context, usernames []string) ([]*model.User, error)
	GetUserByRememberToken(ctx context.Context, token string) (*model.User, error)
	ExistsEmail(ctx context.Context, email string, excludeID uint64) (bool, error)
	ExistsUsername(ctx context.Context, username string, excludeID uint64) (bool, error)
	UpdateAccount(ctx context.Context, id uint64, username, email string) error
	UpdatePassword(ctx context.Context, id uint64, digest string) error
	SetLocked(ctx context.Context, id uint64, lockedAt *time.Time) error
	DeleteUser(ctx context.Context, id uint64) error
	List(ctx context.Context, lockedOnly bool, limit, offset int) ([]*model.User, int64, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db}
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUsersByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	var users []*model.User
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("LOWER(username) = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUsersByUsernames(ctx context.Context, usernames []string) ([]*model.User, error) {
	if len(usernames) == 0 {
		return []*model.User{}, nil
	}
	lowered := make([]string, 0, len(usernames))
	for _, name := range usernames {
		lowered = append(lowered, strings.ToLower(name))
	}
	var users []*model.User
	err := s.db.WithContext(ctx).Where("LOWER(username) IN ?", lowered).Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) GetUserByRememberToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("remember_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) ExistsEmail(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(email), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserRepoImpl) ExistsUsername(ctx context.Context, username string, excludeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(username) = ? AND id <> ?", strings.ToLower(username), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserRepoImpl) UpdateAccount(ctx context.Context, id uint64, username, email string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"username": username, "email": email, "updated_at": time.Now()}).Error
}

func (s *UserRepoImpl) UpdatePassword(ctx context.Context, id uint64, digest string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_digest": digest, "updated_at": time.Now()}).Error
}

func (s *UserRepoImpl) SetLocked(ctx context.Context, id uint64, lockedAt *time.Time) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("locked_at", lockedAt).Error
}

func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *UserRepoImpl) List(ctx context.Context, lockedOnly bool, limit, offset int) ([]*model.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.User{})
	if lockedOnly {
		query = query.Where("locked_at IS NOT NULL")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []*model.User
	err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}
