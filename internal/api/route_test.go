package api

import (
	"Touchline/internal/api/config"
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/response"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.ServerConfig{SessionName: "touchline_test", SessionSecret: "test-secret"}
	return SetupRouter(cfg, &HandlersGroup{})
}

func TestSetupRouter_LifecycleRoutes(t *testing.T) {
	r := newTestRouter()
	handlers := map[string]string{}
	for _, route := range r.Routes() {
		handlers[route.Method+" "+route.Path] = route.Handler
	}

	cases := map[string]string{
		"DELETE /api/matches/:id":              "(*LifecycleHandler).Trash",
		"PATCH /api/topics/:id/restore":        "(*LifecycleHandler).Restore",
		"PATCH /api/nba_topics/:id/restore":    "(*LifecycleHandler).Restore",
		"PATCH /api/tennis_topics/:id/restore": "(*LifecycleHandler).Restore",
		"PATCH /api/comments/:id/restore":      "(*LifecycleHandler).Restore",
		"PATCH /api/admin/matches/:id/restore": "(*LifecycleHandler).Restore",
	}
	for route, want := range cases {
		got, ok := handlers[route]
		if assert.True(t, ok, "missing route %s", route) {
			assert.Contains(t, got, want, route)
		}
	}
}

func TestSetupRouter_LifecycleRoutesRequireLogin(t *testing.T) {
	r := newTestRouter()
	for _, req := range []struct{ method, path string }{
		{http.MethodDelete, "/api/matches/1"},
		{http.MethodPatch, "/api/topics/1/restore"},
		{http.MethodPatch, "/api/comments/1/restore"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(req.method, req.path, strings.NewReader("")))
		require.Equal(t, http.StatusOK, w.Code, req.path)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.Unauthorized, resp.Code, req.path)
	}
}
