package model

import (
	"time"
)

type User struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username" json:"username"`
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Name           string     `gorm:"type:varchar(50);not null;default:''" json:"name"`
	PasswordDigest string     `gorm:"type:varchar(255);not null" json:"-"`
	RememberToken  string     `gorm:"type:varchar(64);not null;index:idx_users_remember_token" json:"-"`
	Admin          bool       `gorm:"not null;default:false" json:"admin"`
	LockedAt       *time.Time `json:"lockedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsLocked() bool {
	return u.LockedAt != nil
}
