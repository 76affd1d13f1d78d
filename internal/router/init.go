package router

import (
	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/container"
	pginfra "github.com/devlinkhq/devlink/internal/infrastructure/postgres"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/router/modules"
)

// InitModules builds every feature module from the container singletons
// and registers it with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	accountSvc := application.NewAccountService(users, container.GetJWT(), logger)
	accountSvc.Pub = container.GetRabbitPub()
	accountSvc.MailEnabled = cfg.MailSendEnabled
	accountSvc.ES = container.GetES()
	accountSvc.ESUsersIndex = cfg.ESUsersIndex
	accountSvc.GCS = container.GetGCS()
	accountSvc.GCSBucket = cfg.GCSBucket

	profileSvc := application.NewProfileService(profiles, users, logger)
	profileSvc.Redis = container.GetRedis()
	profileSvc.Pub = container.GetRabbitPub()
	profileSvc.MailEnabled = cfg.MailSendEnabled
	profileSvc.ES = container.GetES()
	profileSvc.ESProfilesIndex = cfg.ESProfilesIndex

	postSvc := application.NewPostService(posts, logger)
	postSvc.Redis = container.GetRedis()

	r.Add(modules.NewUsersModule(
		handlers.NewUsersHandler(accountSvc, logger, cfg.CookieDomain, cfg.CookieSecure),
		container.GetJWT(),
	))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger), container.GetJWT()))
	r.Add(modules.NewPostsModule(handlers.NewPostsHandler(postSvc, logger), container.GetJWT()))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
