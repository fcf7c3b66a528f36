package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeviceModel 客户端设备登记，集合 appids
type DeviceModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDString   string             `bson:"idstring" json:"idstring"`
	Type       int8               `bson:"type" json:"type"` // 1-iOS 2-Android
	AppVer     string             `bson:"app_ver" json:"appVer"`
	OSVer      string             `bson:"os_ver" json:"osVer"`
	DeviceInfo string             `bson:"device_info" json:"deviceInfo"`
	Freeze     bool               `bson:"freeze" json:"freeze"`
	LastLogin  time.Time          `bson:"last_login" json:"lastLogin"`
}
