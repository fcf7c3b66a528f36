package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// 与 gin 的 binding 标签保持一致，错误信息使用 json 字段名
	validate = validator.New()
	validate.SetTagName("binding")
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// ValidateDTO 校验结构体，返回全部错误信息
func ValidateDTO(dto any) []string {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	return ValidationMessages(err)
}

// ValidationMessages 将 validator 错误展开为可读信息
func ValidationMessages(err error) []string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		messages = append(messages, message(fe))
	}
	return messages
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 不能为空", fe.Field())
	case "email":
		return fmt.Sprintf("%s 格式不正确", fe.Field())
	case "min":
		return fmt.Sprintf("%s 长度至少为 %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s 长度不能超过 %s", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s 与 %s 不一致", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]", fe.Field(), fe.Tag())
}
