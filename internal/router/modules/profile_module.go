package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/container"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

// ProfileModule wires profile routes.
// Public: GET /api/profile/all, GET /api/profile/handle/:handle,
// GET /api/profile/user/:user_id
// Protected: everything that mutates, plus GET /api/profile (own)
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/profile/all", publicLimiter, m.Handler.GetAll)
	rg.GET("/profile/handle/:handle", publicLimiter, m.Handler.GetByHandle)
	rg.GET("/profile/user/:user_id", publicLimiter, m.Handler.GetByUser)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetOwn)
		auth.POST("/profile", m.Handler.Upsert)
		auth.DELETE("/profile", m.Handler.DeleteAccount)
		auth.GET("/profile/search", m.Handler.Search)
		auth.POST("/profile/experience", m.Handler.AddExperience)
		auth.DELETE("/profile/experience/:exp_id", m.Handler.RemoveExperience)
		auth.POST("/profile/education", m.Handler.AddEducation)
		auth.DELETE("/profile/education/:edu_id", m.Handler.RemoveEducation)
	}
}
