package handler

import (
	"Touchline/internal/model"
	"Touchline/internal/repository"
	"Touchline/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var got model.Ref
	var gotErr error
	capture := func(c *gin.Context) {
		got, gotErr = refParam(c)
		c.Status(http.StatusNoContent)
	}
	r.GET("/nba_topics/:id", BindKind(model.KindNbaTopic), capture)
	r.GET("/unbound/:id", capture)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nba_topics/12", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, model.NewRef(model.KindNbaTopic, 12), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nba_topics/0", nil))
	assert.ErrorIs(t, gotErr, service.ErrParamInvalid)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nba_topics/abc", nil))
	assert.ErrorIs(t, gotErr, service.ErrParamInvalid)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/unbound/3", nil))
	assert.ErrorIs(t, gotErr, service.ErrUnknownKind)
}

func TestSectionOf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	BindKind(model.KindTennisTopic)(c)
	section, err := sectionOf(c)
	require.NoError(t, err)
	assert.Equal(t, model.SectionTennis, section)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	BindKind(model.KindMatch)(c)
	_, err = sectionOf(c)
	assert.ErrorIs(t, err, service.ErrUnknownKind)
}

func TestQueryHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page=3&comment_id=9", nil)
	assert.Equal(t, 3, pageQuery(c))
	assert.Equal(t, uint64(9), uintQuery(c, "comment_id"))
	assert.Equal(t, uint64(0), uintQuery(c, "missing"))

	// gin 会缓存已解析的 query，换请求要用新的 context
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page=-2", nil)
	assert.Equal(t, 1, pageQuery(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page=abc", nil)
	assert.Equal(t, 1, pageQuery(c))

	assert.Equal(t, repository.ScopeTrashedOnly, scopeOf(true))
	assert.Equal(t, repository.ScopeActive, scopeOf(false))
}
