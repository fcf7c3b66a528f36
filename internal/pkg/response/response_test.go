package response

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, body string, h gin.HandlerFunc) dto.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type loginForm struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func bindAndFail(c *gin.Context) {
	var req loginForm
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, err)
		return
	}
	Success(c, req.Login)
}

func TestError_BindingFailures(t *testing.T) {
	resp := serve(t, `{"login": 1`, bindAndFail)
	assert.Equal(t, BadRequest, resp.Code)
	assert.Equal(t, "Json错误", resp.Message)

	resp = serve(t, ``, bindAndFail)
	assert.Equal(t, BadRequest, resp.Code)

	resp = serve(t, `{"login": 1, "password": "secret1"}`, bindAndFail)
	assert.Equal(t, BadRequest, resp.Code)
	assert.Equal(t, "Json错误", resp.Message)

	resp = serve(t, `{"login": "alice", "password": "123"}`, bindAndFail)
	assert.Equal(t, BadRequest, resp.Code)
	assert.Equal(t, "参数错误", resp.Message)
	assert.Len(t, resp.Error, 1)

	resp = serve(t, `{"login": "alice", "password": "secret1"}`, bindAndFail)
	assert.Equal(t, Ok, resp.Code)
	assert.Equal(t, "alice", resp.Data)
}

func TestError_ServiceErrors(t *testing.T) {
	resp := serve(t, "", func(c *gin.Context) {
		Error(c, fmt.Errorf("load topic: %w", service.ErrTopicNotFound))
	})
	assert.Equal(t, NotFound, resp.Code)
	assert.Equal(t, service.ErrTopicNotFound.Error(), resp.Message)

	resp = serve(t, "", func(c *gin.Context) {
		Error(c, service.NewValidationError("标题不能为空", "正文不能为空"))
	})
	assert.Equal(t, BadRequest, resp.Code)
	assert.Equal(t, []string{"标题不能为空", "正文不能为空"}, resp.Error)

	resp = serve(t, "", func(c *gin.Context) {
		Error(c, errors.New("connection refused"))
	})
	assert.Equal(t, InternalServerError, resp.Code)
	assert.Equal(t, service.UnExpectedError.Error(), resp.Message)
}
