package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func swaggerRequest(cfg config.SwaggerConfig, remoteAddr string) int {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.SwaggerConfig
		remote string
		want   int
	}{
		{"disabled", config.SwaggerConfig{}, "10.0.0.1:1234", http.StatusNotFound},
		{"enabled for everyone", config.SwaggerConfig{Enabled: true}, "10.0.0.1:1234", http.StatusOK},
		{"exact IP allowed", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, "10.0.0.1:1234", http.StatusOK},
		{"CIDR allowed", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.2.3.4:1234", http.StatusOK},
		{"outside the list", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, "10.0.0.1:1234", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, swaggerRequest(tt.cfg, tt.remote))
		})
	}
}
