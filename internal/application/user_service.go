package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cadastroapp/cadastro-api/internal/domain/entity"
	repo "github.com/cadastroapp/cadastro-api/internal/domain/repository"
	"github.com/cadastroapp/cadastro-api/pkg/helpers"
	"github.com/cadastroapp/cadastro-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// Service orchestrates create/read/update/delete over the User+Address
// aggregate. Multi-record mutations go through the repository's transactional
// methods so the aggregate is never observable half-written.
type Service struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	AppName     string
	MailEnabled bool
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, appName string, mailEnabled bool) *Service {
	return &Service{
		Repo:        r,
		JWT:         jwt,
		Logger:      logger,
		Pub:         pub,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

// AddressInput carries the five required address fields.
type AddressInput struct {
	CEP          string
	Street       string
	Neighborhood string
	City         string
	State        string
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
	Address  *AddressInput
}

// UpdateUserInput uses pointers so "field present in payload" is the update
// trigger, not field truthiness. An explicit age of 0 is applied; an absent
// age leaves the stored value untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
	Address  *AddressInput
}

// Login validates email/password and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.JWT.Generate(u.ID)
}

func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create hashes the password and inserts user and optional address in one
// transaction. On success a welcome email is enqueued best-effort.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Age:      in.Age,
	}
	addr := addressFromInput(in.Address)

	if err := s.Repo.Create(ctx, u, addr); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

// Update applies only the supplied fields, re-hashing the password when one
// is provided, and upserts the address when one is supplied. The write runs
// in a single transaction.
func (s *Service) Update(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if in.Age != nil {
		u.Age = in.Age
	}

	if err := s.Repo.Update(ctx, u, addressFromInput(in.Address)); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func addressFromInput(in *AddressInput) *entity.Address {
	if in == nil {
		return nil
	}
	return &entity.Address{
		CEP:          in.CEP,
		Street:       in.Street,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
	}
}

// enqueueWelcome publishes a welcome-email job. Failures are logged and never
// affect the create response.
func (s *Service) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data: map[string]any{
			"Name":    u.Name,
			"AppName": s.AppName,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
