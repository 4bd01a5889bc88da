package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/notesapp/notes-api/internal/container"
	handlers "github.com/notesapp/notes-api/internal/interface/http"
	"github.com/notesapp/notes-api/internal/interface/middleware"
)

// AuthModule wires account endpoints under /api/auth.
// Signup and login carry the per-IP limiter; refresh and logout only
// deal in the cookie and stay unlimited.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	// one shared per-IP window covers both endpoints
	limiter := middleware.RateLimit(container.GetRedis(), cfg.AuthRateMax, cfg.AuthRateWindow, middleware.KeyByIP(), nil)

	rg.POST("/auth/signup", limiter, m.Handler.Signup)
	rg.POST("/auth/login", limiter, m.Handler.Login)
	rg.GET("/auth/refresh", m.Handler.Refresh)
	rg.POST("/auth/logout", m.Handler.Logout)
}
