package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/container"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

// PostsModule wires post routes.
// Public: GET /api/posts, GET /api/posts/:id
// Protected: create/delete/like/unlike/comment
type PostsModule struct {
	Handler *handlers.PostsHandler
	JWT     *helpers.JWTManager
}

func NewPostsModule(h *handlers.PostsHandler, jwt *helpers.JWTManager) *PostsModule {
	return &PostsModule{Handler: h, JWT: jwt}
}

func (m *PostsModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/posts", publicLimiter, m.Handler.List)
	rg.GET("/posts/:id", publicLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/posts", m.Handler.Create)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.POST("/posts/like/:id", m.Handler.Like)
		auth.POST("/posts/unlike/:id", m.Handler.Unlike)
		auth.POST("/posts/comment/:id", m.Handler.AddComment)
		auth.DELETE("/posts/comment/:id/:comment_id", m.Handler.RemoveComment)
	}
}
