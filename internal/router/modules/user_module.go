package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"auth-api/internal/container"
	"auth-api/internal/domain/entity"
	handlers "auth-api/internal/interface/http"
	"auth-api/internal/interface/middleware"
	"auth-api/pkg/helpers"
)

// UserModule wires the protected user endpoints.
// Protected (bearer token + USER role): GET /user/me, GET /user/search
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/user")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RequireRole(entity.RoleUser))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("/search", m.Handler.Search)
	}
}
