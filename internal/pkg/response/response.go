package response

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/util"
	"Touchline/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Invalid 表单校验失败，返回全部错误信息
func Invalid(c *gin.Context, messages []string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    BadRequest,
		Message: "参数错误",
		Error:   messages,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Invalid(c, util.ValidationMessages(ve))
		return
	}

	var formErr *service.ValidationError
	if errors.As(err, &formErr) {
		Invalid(c, formErr.Messages)
		return
	}

	if isDecodeError(err) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	for target, code := range service.ErrorMap {
		if errors.Is(err, target) {
			Fail(c, code, target.Error())
			return
		}
	}
	log.ErrorContext(c.Request.Context(), "Error", "path", c.FullPath(), "err", err)
	Fail(c, InternalServerError, service.UnExpectedError.Error())
}

// isDecodeError gin 绑定走 encoding/json，手动解码的接口走 go-json
func isDecodeError(err error) bool {
	var (
		syntax   *stdjson.SyntaxError
		typ      *stdjson.UnmarshalTypeError
		goSyntax *json.SyntaxError
		goTyp    *json.UnmarshalTypeError
	)
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &syntax) || errors.As(err, &typ) ||
		errors.As(err, &goSyntax) || errors.As(err, &goTyp)
}
