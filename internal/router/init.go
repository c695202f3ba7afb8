package router

import (
	"auth-api/internal/application"
	"auth-api/internal/container"
	pginfra "auth-api/internal/infrastructure/postgres"
	handlers "auth-api/internal/interface/http"
	"auth-api/internal/router/modules"
)

func buildService() *application.Service {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())
	return application.NewService(
		repo,
		container.GetJWT(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		cfg.AppName,
	)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	svc := buildService()
	logger := container.GetLogger()

	authHandler := handlers.NewAuthHandler(svc, logger)
	userHandler := handlers.NewUserHandler(svc, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
