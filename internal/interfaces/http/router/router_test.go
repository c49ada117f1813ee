package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	assert.Equal(t, "/api/v1", NewRouter(gin.New()).BasePath())
	assert.Equal(t, "/api/v2", NewRouter(gin.New(), WithAPIVersion("v2")).BasePath())
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("public", "/public")
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	NewRouter(engine, WithAPIVersion("v2")).Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/public/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/public/ping").Code)
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("projects", "/projects")
	reply := func(status int) gin.HandlerFunc {
		return func(c *gin.Context) { c.Status(status) }
	}
	g.GET("", reply(http.StatusOK))
	g.POST("", reply(http.StatusCreated))
	g.PUT("/:id", reply(http.StatusAccepted))
	g.PATCH("/:id/seen", reply(http.StatusResetContent))
	g.DELETE("/:id", reply(http.StatusNoContent))
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/api/v1/projects", http.StatusOK},
		{http.MethodPost, "/api/v1/projects", http.StatusCreated},
		{http.MethodPut, "/api/v1/projects/p1", http.StatusAccepted},
		{http.MethodPatch, "/api/v1/projects/p1/seen", http.StatusResetContent},
		{http.MethodDelete, "/api/v1/projects/p1", http.StatusNoContent},
		{http.MethodGet, "/api/v1/skills", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(engine, tt.method, tt.target).Code)
		})
	}
}

func TestDomainGroup_MiddlewareReachesSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("admin", "/admin").Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	})
	g.GET("/overview", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.Group("skills", "/skills").GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.RegisterRoutes(engine.Group("/api/v1"))

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/admin/overview").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/admin/skills").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/skills", nil)
	req.Header.Set("Authorization", "Bearer x")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainGroup_Accessors(t *testing.T) {
	g := NewDomainGroup("admin", "/admin")
	assert.Equal(t, "admin", g.Name())
	assert.Equal(t, "/admin", g.Prefix())
}
