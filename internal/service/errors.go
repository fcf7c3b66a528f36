package service

import (
	"errors"
	"strings"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrLoginRequired           = errors.New("请先登录")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserLocked              = errors.New("用户已被锁定")
	ErrUserLockSelf            = errors.New("不能锁定自己")
	ErrUserLockAdmin           = errors.New("不能锁定管理员")
	ErrUserDeleteSelf          = errors.New("不能删除自己")
	ErrUserDeleteAdmin         = errors.New("不能删除管理员")
	ErrUserEmailExist          = errors.New("邮箱已被注册")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrInvalidCredentials      = errors.New("用户名或密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrTooManyAttempts         = errors.New("尝试次数过多，请稍后再试")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrFileNotExist            = errors.New("文件不存在")
	ErrUnknownKind             = errors.New("不支持的对象类型")
	ErrNotCommentable          = errors.New("该对象不能评论")
	ErrNotLikeable             = errors.New("该对象不能点赞")
	ErrEntityNotFound          = errors.New("内容不存在")
	ErrTopicNotFound           = errors.New("话题不存在")
	ErrMatchNotFound           = errors.New("比赛不存在")
	ErrCommentNotFound         = errors.New("评论不存在")
	ErrCategoryNotFound        = errors.New("分类不存在")
	ErrCategorySlugExist       = errors.New("分类标识已存在")
	ErrCategoryGroupMismatch   = errors.New("分类不属于该板块")
	ErrNotificationNotFound    = errors.New("通知不存在")
	ErrDeviceNotFound          = errors.New("设备不存在")
	ErrPushNotFound            = errors.New("推送不存在")
	ErrAttachmentNotFound      = errors.New("附件不存在")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrLoginRequired:           Unauthorized,
	ErrUserNotFound:            NotFound,
	ErrUserLocked:              Forbidden,
	ErrUserLockSelf:            BadRequest,
	ErrUserLockAdmin:           BadRequest,
	ErrUserDeleteSelf:          BadRequest,
	ErrUserDeleteAdmin:         BadRequest,
	ErrUserEmailExist:          BadRequest,
	ErrUserUsernameExist:       BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrInvalidCredentials:      Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrTooManyAttempts:         TooManyRequests,
	ErrFileNotSupported:        BadRequest,
	ErrFileNotExist:            NotFound,
	ErrUnknownKind:             BadRequest,
	ErrNotCommentable:          BadRequest,
	ErrNotLikeable:             BadRequest,
	ErrEntityNotFound:          NotFound,
	ErrTopicNotFound:           NotFound,
	ErrMatchNotFound:           NotFound,
	ErrCommentNotFound:         NotFound,
	ErrCategoryNotFound:        NotFound,
	ErrCategorySlugExist:       BadRequest,
	ErrCategoryGroupMismatch:   BadRequest,
	ErrNotificationNotFound:    NotFound,
	ErrDeviceNotFound:          NotFound,
	ErrPushNotFound:            NotFound,
	ErrAttachmentNotFound:      NotFound,
	UnauthorizedError:          Forbidden,
	UnExpectedError:            InternalServerError,
}

// ValidationError 表单校验失败，携带全部错误信息，不会写入任何数据
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// validator 收集多条校验信息
type validator struct {
	messages []string
}

func (v *validator) check(ok bool, message string) {
	if !ok {
		v.messages = append(v.messages, message)
	}
}

func (v *validator) err() error {
	if len(v.messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: v.messages}
}
