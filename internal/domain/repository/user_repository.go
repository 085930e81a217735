package repository

import (
	"context"
	"errors"

	"github.com/cadastroapp/cadastro-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when the referenced user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the store's unique email constraint rejects a write.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository defines user-related database operations. Create, Update and
// Delete run inside a single transaction: either every touched record
// persists, or none does.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create inserts the user and, when addr is non-nil, its address.
	Create(ctx context.Context, u *entity.User, addr *entity.Address) error
	// Update rewrites the user row and, when addr is non-nil, updates or
	// inserts the address for that user.
	Update(ctx context.Context, u *entity.User, addr *entity.Address) error
	// Delete removes the address (if any) and then the user.
	Delete(ctx context.Context, id int64) error
}
