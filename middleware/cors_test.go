package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
	}{
		{name: "exact origin", allowed: []string{"https://app.splitly.dev"}, origin: "https://app.splitly.dev", wantOrigin: "https://app.splitly.dev"},
		{name: "subdomain wildcard", allowed: []string{"*.splitly.dev"}, origin: "https://beta.splitly.dev", wantOrigin: "https://beta.splitly.dev"},
		{name: "disallowed origin", allowed: []string{"https://app.splitly.dev"}, origin: "https://evil.example", wantOrigin: ""},
		{name: "allow all", allowed: []string{"*"}, origin: "https://anything.example", wantOrigin: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware(&config.ServerConfig{AllowedOrigins: tt.allowed}))
			router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
