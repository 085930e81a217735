package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/cadastroapp/cadastro-api/internal/container"
	repouser "github.com/cadastroapp/cadastro-api/internal/domain/repository"
	handlers "github.com/cadastroapp/cadastro-api/internal/interface/http"
	"github.com/cadastroapp/cadastro-api/internal/interface/middleware"
)

// CEPModule exposes the authenticated postal-code lookup proxy.
type CEPModule struct {
	Handler *handlers.CEPHandler
	Users   repouser.UserRepository
}

func NewCEPModule(h *handlers.CEPHandler, users repouser.UserRepository) *CEPModule {
	return &CEPModule{Handler: h, Users: users}
}

func (m *CEPModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/cep")
	auth.Use(middleware.Auth(m.Users, container.GetJWT(), container.GetLogger()))
	auth.GET("/:cep", m.Handler.Lookup)
}
