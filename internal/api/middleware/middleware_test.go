package middleware

import (
	"Touchline/internal/api/config"
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/redis"
	"Touchline/internal/pkg/security"
	"Touchline/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	service.UserService
	users map[uint64]*model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, service.ErrUserNotFound
}

func (f *fakeUsers) GetByRememberToken(_ context.Context, token string) (*model.User, error) {
	for _, u := range f.users {
		if u.RememberToken == token {
			return u, nil
		}
	}
	return nil, service.ErrUserNotFound
}

func newFakeUsers() *fakeUsers {
	locked := time.Now()
	return &fakeUsers{users: map[uint64]*model.User{
		1: {ID: 1, Username: "alice", RememberToken: "tok-alice"},
		2: {ID: 2, Username: "bob", RememberToken: "tok-bob", LockedAt: &locked},
		3: {ID: 3, Username: "admin", RememberToken: "tok-admin", Admin: true},
	}}
}

func newLimiter(t *testing.T) *redis.LoginLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewLoginLimiter(rdb, config.LimiterConfig{MaxAttempts: 4, WindowSeconds: 60})
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	security.InitJWT(config.ServerConfig{JWTSecret: "middleware-test", JWTExpireHours: 1})

	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Response{Code: 200, Data: CurrentUserID(c)})
	}

	r := gin.New()
	r.Use(SessionMiddleware(config.ServerConfig{
		SessionName:   "touchline_test",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}), IdentityMiddleware(newFakeUsers()))
	r.GET("/me", ok)
	r.POST("/write", NoLockedRequired(), ok)
	r.GET("/settings", LoginRequired(), ok)
	r.GET("/admin", AdminRequired(), ok)

	login := r.Group("", LoginRateLimit(newLimiter(t)))
	login.GET("/login", ok)
	login.POST("/login", ok)
	return r
}

type result struct {
	status int
	body   dto.Response
	header http.Header
}

func do(t *testing.T, r http.Handler, req *http.Request) result {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return result{status: w.Code, body: body, header: w.Header()}
}

func bearer(t *testing.T, method, path string, userID uint64) *http.Request {
	t.Helper()
	token, err := security.GenerateToken(userID, false)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestIdentity_Guest(t *testing.T) {
	res := do(t, newRouter(t), httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.EqualValues(t, 0, res.body.Data)
}

func TestIdentity_RememberCookieStartsSession(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "remember_token", Value: "tok-alice"})
	res := do(t, r, req)
	assert.EqualValues(t, 1, res.body.Data)

	var sessionCookie *http.Cookie
	for _, c := range (&http.Response{Header: res.header}).Cookies() {
		if c.Name == "touchline_test" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	// 只带 session cookie 也能识别
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(sessionCookie)
	assert.EqualValues(t, 1, do(t, r, req).body.Data)
}

func TestIdentity_UnknownRememberTokenClearsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "remember_token", Value: "stale"})
	res := do(t, newRouter(t), req)

	assert.EqualValues(t, 0, res.body.Data)
	setCookie := strings.Join(res.header.Values("Set-Cookie"), "\n")
	assert.Contains(t, setCookie, "remember_token=;")
	assert.Contains(t, setCookie, "Max-Age=0")
}

func TestIdentity_Bearer(t *testing.T) {
	r := newRouter(t)
	assert.EqualValues(t, 3, do(t, r, bearer(t, http.MethodGet, "/me", 3)).body.Data)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	assert.EqualValues(t, 0, do(t, r, req).body.Data)
}

func TestGuards(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, 401, do(t, r, httptest.NewRequest(http.MethodGet, "/settings", nil)).body.Code)
	assert.Equal(t, 200, do(t, r, bearer(t, http.MethodGet, "/settings", 2)).body.Code)

	// 锁定用户可以浏览，不能写
	assert.Equal(t, 401, do(t, r, httptest.NewRequest(http.MethodPost, "/write", nil)).body.Code)
	assert.Equal(t, 403, do(t, r, bearer(t, http.MethodPost, "/write", 2)).body.Code)
	assert.Equal(t, 200, do(t, r, bearer(t, http.MethodPost, "/write", 1)).body.Code)

	assert.Equal(t, 403, do(t, r, bearer(t, http.MethodGet, "/admin", 1)).body.Code)
	assert.Equal(t, 200, do(t, r, bearer(t, http.MethodGet, "/admin", 3)).body.Code)
}

func TestLoginRateLimit(t *testing.T) {
	r := newRouter(t)
	from := func(method, ip string) *http.Request {
		req := httptest.NewRequest(method, "/login", nil)
		req.RemoteAddr = ip + ":40000"
		return req
	}

	// 打开登录页不计数
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, do(t, r, from(http.MethodGet, "10.0.0.1")).status)
	}

	for i := 1; i <= 5; i++ {
		assert.Equal(t, http.StatusOK, do(t, r, from(http.MethodPost, "10.0.0.1")).status, "attempt %d", i)
	}
	res := do(t, r, from(http.MethodPost, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, res.status)
	assert.Equal(t, 429, res.body.Code)
	assert.Equal(t, service.ErrTooManyAttempts.Error(), res.body.Message)

	assert.Equal(t, http.StatusTooManyRequests, do(t, r, from(http.MethodGet, "10.0.0.1")).status)
	assert.Equal(t, http.StatusOK, do(t, r, from(http.MethodPost, "10.0.0.2")).status)
}

func TestMaskSecrets(t *testing.T) {
	masked := maskSecrets([]byte(`{"login":"alice","password":"p\"w","password_confirmation":"x","remember_token":"abc"}`))
	assert.Equal(t, `{"login":"alice","password":"******","password_confirmation":"******","remember_token":"******"}`, masked)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://touchline.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://touchline.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://touchline.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTraceMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "upstream-1234")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-1234", w.Header().Get(TraceHeader))
	assert.Equal(t, "upstream-1234", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(TraceHeader, "bad id\nwith newline")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(TraceHeader), 36)
}
