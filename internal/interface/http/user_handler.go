package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/cadastroapp/cadastro-api/internal/application"
	"github.com/cadastroapp/cadastro-api/internal/domain/entity"
	"github.com/cadastroapp/cadastro-api/internal/interface/middleware"
	"github.com/cadastroapp/cadastro-api/pkg/response"
	"github.com/cadastroapp/cadastro-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type addressPayload struct {
	CEP          string `json:"cep" binding:"required"`
	Street       string `json:"street" binding:"required"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
}

type createUserRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=100"`
	Email    string          `json:"email" binding:"required,email,max=255"`
	Password string          `json:"password" binding:"required,pwd"`
	Age      *int            `json:"age" binding:"omitempty,gte=0"`
	Address  *addressPayload `json:"address"`
}

type updateUserRequest struct {
	Name     *string         `json:"name" binding:"omitempty,min=2,max=100"`
	Email    *string         `json:"email" binding:"omitempty,email,max=255"`
	Password *string         `json:"password" binding:"omitempty,pwd"`
	Age      *int            `json:"age" binding:"omitempty,gte=0"`
	Address  *addressPayload `json:"address"`
}

// addressView and userView are the sanitized representations: the password
// field does not exist on them, so it can never leak.
type addressView struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type userView struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Age       *int         `json:"age,omitempty"`
	Address   *addressView `json:"address,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func newUserView(u *entity.User) userView {
	v := userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Address != nil {
		v.Address = &addressView{
			CEP:          u.Address.CEP,
			Street:       u.Address.Street,
			Neighborhood: u.Address.Neighborhood,
			City:         u.Address.City,
			State:        u.Address.State,
		}
	}
	return v
}

func newUserViews(users []*entity.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", map[string]string{"id": "must be an integer"})
		return 0, false
	}
	return id, true
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, newUserViews(users), "users", nil)
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", id).Error("get user failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, newUserView(u), "user", nil)
}

// Me GET /api/users/me — returns the caller's own record using the identity
// the auth gate attached.
func (h *UserHandler) Me(c *gin.Context) {
	ident, ok := middleware.UserFromContext(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), ident.ID)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", ident.ID).Error("get profile failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, newUserView(u), "profile", nil)
}

// Create POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := userapp.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Address:  addressInput(req.Address),
	}
	u, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			response.Error[any](c, http.StatusBadRequest, "email already registered", map[string]string{"email": "already registered"})
			return
		}
		h.Logger.WithError(err).Error("create user failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, newUserView(u), "user created", nil)
}

// Update PUT /api/users/:id — partial update, only supplied fields change.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := userapp.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Address:  addressInput(req.Address),
	}
	u, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, userapp.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "email already registered", map[string]string{"email": "already registered"})
		default:
			h.Logger.WithError(err).WithField("user_id", id).Error("update user failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, newUserView(u), "user updated", nil)
}

// Delete DELETE /api/users/:id — 204 with no body on success.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", id).Error("delete user failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func addressInput(p *addressPayload) *userapp.AddressInput {
	if p == nil {
		return nil
	}
	return &userapp.AddressInput{
		CEP:          p.CEP,
		Street:       p.Street,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		State:        p.State,
	}
}
