package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/cadastroapp/cadastro-api/internal/container"
	repouser "github.com/cadastroapp/cadastro-api/internal/domain/repository"
	handlers "github.com/cadastroapp/cadastro-api/internal/interface/http"
	"github.com/cadastroapp/cadastro-api/internal/interface/middleware"
)

// UserModule wires user HTTP handlers and the auth gate into routes.
// Public: POST /api/users (registration).
// Protected: GET /api/users, GET /api/users/me, GET /api/users/:id,
// PUT /api/users/:id, DELETE /api/users/:id.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repouser.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repouser.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Registration is public; validation happens at binding time.
	rg.POST("/users", m.Handler.Create)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Users, container.GetJWT(), container.GetLogger()))
	{
		auth.GET("", m.Handler.List)
		auth.GET("/me", m.Handler.Me)
		auth.GET("/:id", m.Handler.GetByID)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
