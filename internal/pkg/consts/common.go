package consts

const (
	MimePrefixImage = "image"
)

const (
	SessionUserKey     = "user_id"
	RememberCookieName = "remember_token"
	RememberCookieAge  = 4 * 7 * 24 * 3600
	CtxUserKey         = "currentUser"
	CtxUserIDKey       = "userID"
)

const (
	PreviewWidth   = 200
	PreviewHeight  = 77
	PreviewSuffix  = "_77"
	PreviewMaxSrc  = 200
	AttachmentPath = "attachments/"
)

const (
	DeviceTypeIOS     int8 = 1
	DeviceTypeAndroid int8 = 2
)

const (
	PushStatusPending int8 = 0
	PushStatusSent    int8 = 1
	PushStatusFailed  int8 = 2
	PushStatusSkipped int8 = 3
)

const (
	NotificationReply   int8 = 1
	NotificationMention int8 = 2
)
