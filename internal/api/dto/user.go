package dto

import "time"

type RegisterDTO struct {
	Username             string `json:"username" binding:"required,min=3,max=20,alphanum"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Name                 string `json:"name" binding:"max=50"`
	Password             string `json:"password" binding:"required,min=6,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// LoginDTO login 为邮箱或用户名
type LoginDTO struct {
	Login      string `json:"login" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type AccountDTO struct {
	Username        string `json:"username" binding:"required,min=3,max=20,alphanum"`
	Email           string `json:"email" binding:"required,email,max=255"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

type PasswordDTO struct {
	CurrentPassword      string `json:"current_password" binding:"required"`
	Password             string `json:"password" binding:"required,min=6,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type UserDTO struct {
	ID        uint64     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Name      string     `json:"name"`
	Admin     bool       `json:"admin"`
	LockedAt  *time.Time `json:"locked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type UserListDTO struct {
	PageDTO
	Users []*UserDTO `json:"users"`
}

// RegisterResultDTO 注册成功返回，App 端据此保存登录状态
type RegisterResultDTO struct {
	ID            uint64 `json:"id"`
	RememberToken string `json:"remember_token"`
}

// AppSessionDTO App 登录返回
type AppSessionDTO struct {
	User          *UserDTO `json:"user"`
	RememberToken string   `json:"remember_token"`
	Token         string   `json:"token"`
}

// AvailabilityDTO 用户名 / 邮箱是否可用
type AvailabilityDTO struct {
	Available bool `json:"available"`
}
