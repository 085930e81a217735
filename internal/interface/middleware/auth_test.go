package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastroapp/cadastro-api/internal/domain/entity"
	repouser "github.com/cadastroapp/cadastro-api/internal/domain/repository"
	"github.com/cadastroapp/cadastro-api/pkg/helpers"
)

type stubUserRepo struct {
	user *entity.User
	err  error
}

func (s *stubUserRepo) List(ctx context.Context) ([]*entity.User, error) { return nil, nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.ID != id {
		return nil, repouser.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, repouser.ErrNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, u *entity.User, addr *entity.Address) error {
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, u *entity.User, addr *entity.Address) error {
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id int64) error { return nil }

func authEngine(users repouser.UserRepository, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(users, jwt, nil), func(c *gin.Context) {
		u, ok := UserFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	return r
}

func doAuthed(t *testing.T, r *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	r := authEngine(&stubUserRepo{}, helpers.NewJWTManager("secret", time.Hour))

	w := doAuthed(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing access token")
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := authEngine(&stubUserRepo{}, helpers.NewJWTManager("secret", time.Hour))

	for _, header := range []string{"sometoken", "Basic abc", "Bearer ", "Bearer"} {
		w := doAuthed(t, r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	r := authEngine(&stubUserRepo{}, helpers.NewJWTManager("secret", time.Hour))

	w := doAuthed(t, r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid access token")
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", -time.Hour)
	token, _, err := jwt.Generate(1)
	require.NoError(t, err)

	r := authEngine(&stubUserRepo{user: &entity.User{ID: 1}}, jwt)
	w := doAuthed(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	token, _, err := helpers.NewJWTManager("other-secret", time.Hour).Generate(1)
	require.NoError(t, err)

	r := authEngine(&stubUserRepo{user: &entity.User{ID: 1}}, helpers.NewJWTManager("secret", time.Hour))
	w := doAuthed(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_DeletedUser(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.Generate(42)
	require.NoError(t, err)

	// Valid token, but no user with that id remains in the store.
	r := authEngine(&stubUserRepo{}, jwt)
	w := doAuthed(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_UnconfiguredSecret(t *testing.T) {
	token, _, err := helpers.NewJWTManager("secret", time.Hour).Generate(1)
	require.NoError(t, err)

	r := authEngine(&stubUserRepo{}, helpers.NewJWTManager("", time.Hour))
	w := doAuthed(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuth_Success(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.Generate(7)
	require.NoError(t, err)

	r := authEngine(&stubUserRepo{user: &entity.User{ID: 7, Name: "Ana Silva"}}, jwt)
	w := doAuthed(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}
