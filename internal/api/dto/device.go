package dto

import "time"

// DeviceDTO 设备登记请求与返回
type DeviceDTO struct {
	ID         string    `json:"id,omitempty"`
	IDString   string    `json:"idstring" binding:"required,max=128"`
	Type       int8      `json:"type" binding:"required,oneof=1 2"`
	AppVer     string    `json:"app_ver" binding:"max=32"`
	OSVer      string    `json:"os_ver" binding:"max=32"`
	DeviceInfo string    `json:"device_info" binding:"max=255"`
	Freeze     bool      `json:"freeze"`
	LastLogin  time.Time `json:"last_login"`
}

type DeviceListDTO struct {
	PageDTO
	Devices []*DeviceDTO `json:"devices"`
}

type PushCreateDTO struct {
	AppID   string `json:"appid" binding:"required,len=24,hexadecimal"`
	Title   string `json:"title" binding:"required,max=64"`
	Content string `json:"content" binding:"required,max=255"`
}

type PushDTO struct {
	ID        string     `json:"id"`
	AppID     string     `json:"appid"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    int8       `json:"status"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}
