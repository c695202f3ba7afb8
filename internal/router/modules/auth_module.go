package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"auth-api/internal/container"
	handlers "auth-api/internal/interface/http"
	"auth-api/internal/interface/middleware"
)

// AuthModule wires the public credential endpoints.
// Public: POST /auth/signup, POST /auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Both endpoints do a bcrypt operation per request, so keep the
	// per-IP limits tight.
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
