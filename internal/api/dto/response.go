package dto

// Response 统一返回结构，Error 仅在表单校验失败时出现
type Response struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Error   []string `json:"error,omitempty"`
}

// PageDTO 分页信息
type PageDTO struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Total      int64 `json:"total"`
}
