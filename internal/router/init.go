package router

import (
	userapp "github.com/cadastroapp/cadastro-api/internal/application"
	"github.com/cadastroapp/cadastro-api/internal/container"
	pginfra "github.com/cadastroapp/cadastro-api/internal/infrastructure/postgres"
	handlers "github.com/cadastroapp/cadastro-api/internal/interface/http"
	"github.com/cadastroapp/cadastro-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	repo := pginfra.NewUserRepository(container.GetPGPool(), logger)
	svc := userapp.NewService(
		repo,
		container.GetJWT(),
		logger,
		container.GetRabbitPub(),
		cfg.AppName,
		cfg.MailSendEnabled,
	)

	userHandler := handlers.NewUserHandler(svc, logger)
	authHandler := handlers.NewAuthHandler(svc, logger)
	cepHandler := handlers.NewCEPHandler(container.GetCEP(), logger)

	r.Add(modules.NewUserModule(userHandler, repo))
	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewCEPModule(cepHandler, repo))
}
