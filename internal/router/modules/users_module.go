package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/container"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

// UsersModule wires account routes.
// Public: POST /api/users/register, POST /api/users/login
// Protected: GET /api/users/current, POST /api/users/logout,
// POST /api/users/avatar, GET /api/users/search
type UsersModule struct {
	Handler *handlers.UsersHandler
	JWT     *helpers.JWTManager
}

func NewUsersModule(h *handlers.UsersHandler, jwt *helpers.JWTManager) *UsersModule {
	return &UsersModule{Handler: h, JWT: jwt}
}

func (m *UsersModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users/current", m.Handler.Current)
		auth.POST("/users/logout", m.Handler.Logout)
		auth.POST("/users/avatar", m.Handler.UploadAvatar)
		auth.GET("/users/search", m.Handler.Search)
	}
}
