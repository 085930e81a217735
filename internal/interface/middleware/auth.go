package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cadastroapp/cadastro-api/internal/domain/entity"
	repouser "github.com/cadastroapp/cadastro-api/internal/domain/repository"
	"github.com/cadastroapp/cadastro-api/pkg/helpers"
	"github.com/cadastroapp/cadastro-api/pkg/response"
)

const (
	// CtxUserKey holds the resolved *entity.User for protected handlers.
	CtxUserKey = "authUser"
	// CtxUserIDKey holds the resolved user id.
	CtxUserIDKey = "userID"
)

// Auth extracts the bearer token from the Authorization header, verifies it,
// and resolves it to a stored user. The gate is a pure boundary check: no
// business logic beyond identity resolution.
func Auth(users repouser.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		token := strings.TrimSpace(parts[1])

		// Operator error, not a credential failure: logged distinctly.
		if !jwt.Configured() {
			if logger != nil {
				logger.Error("jwt signing secret is not configured")
			}
			response.AbortError[any](c, http.StatusInternalServerError, "server misconfigured", nil)
			return
		}

		uid, err := jwt.Parse(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			if errors.Is(err, repouser.ErrNotFound) {
				response.AbortError[any](c, http.StatusUnauthorized, "invalid access token", nil)
				return
			}
			if logger != nil {
				logger.WithError(err).WithField("user_id", uid).Error("auth identity lookup failed")
			}
			response.AbortError[any](c, http.StatusInternalServerError, "internal server error", nil)
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// UserFromContext returns the user the Auth gate attached, if any.
func UserFromContext(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}
