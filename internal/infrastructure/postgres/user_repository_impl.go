package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/cadastroapp/cadastro-api/internal/domain/entity"
	"github.com/cadastroapp/cadastro-api/internal/domain/repository"
)

const uniqueViolation = "23505"

const userWithAddressQuery = `
	SELECT u.id, u.name, u.email, u.password_hash, u.age, u.created_at, u.updated_at,
	       a.id, a.user_id, a.cep, a.street, a.neighborhood, a.city, a.state, a.created_at, a.updated_at
	FROM users u
	LEFT JOIN addresses a ON a.user_id = u.id
`

type UserRepository struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

func NewUserRepository(pool *pgxpool.Pool, logger *logrus.Logger) *UserRepository {
	return &UserRepository{pool: pool, logger: logger}
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, userWithAddressQuery+` ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUserWithAddress(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	rows, err := r.pool.Query(ctx, userWithAddressQuery+` WHERE u.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	return scanUserWithAddress(rows)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, age, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Age,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User, addr *entity.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.rollback(ctx, tx)

	row := tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, age)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.Age)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapError(err)
	}

	if addr != nil {
		addr.UserID = u.ID
		row := tx.QueryRow(ctx, `
			INSERT INTO addresses (user_id, cep, street, neighborhood, city, state)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`, addr.UserID, addr.CEP, addr.Street, addr.Neighborhood, addr.City, addr.State)
		if err := row.Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt); err != nil {
			return mapError(err)
		}
		u.Address = addr
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User, addr *entity.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.rollback(ctx, tx)

	res, err := tx.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, age = $4, updated_at = now()
		WHERE id = $5
	`, u.Name, u.Email, u.Password, u.Age, u.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if addr != nil {
		res, err := tx.Exec(ctx, `
			UPDATE addresses
			SET cep = $1, street = $2, neighborhood = $3, city = $4, state = $5, updated_at = now()
			WHERE user_id = $6
		`, addr.CEP, addr.Street, addr.Neighborhood, addr.City, addr.State, u.ID)
		if err != nil {
			return mapError(err)
		}
		if res.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `
				INSERT INTO addresses (user_id, cep, street, neighborhood, city, state)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, u.ID, addr.CEP, addr.Street, addr.Neighborhood, addr.City, addr.State); err != nil {
				return mapError(err)
			}
		}
	}

	return tx.Commit(ctx)
}

// Delete removes the address and the user as one atomic unit. The two-step
// order keeps the cascade explicit instead of leaning on engine behavior.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM addresses WHERE user_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

// rollback is deferred on every transactional method; after a successful
// commit it is a no-op. A rollback failure is logged, the original error
// still reaches the caller.
func (r *UserRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		if r.logger != nil {
			r.logger.WithError(err).Error("tx rollback failed")
		}
	}
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserWithAddress(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	var (
		addrID      sql.NullInt64
		addrUserID  sql.NullInt64
		cep         sql.NullString
		street      sql.NullString
		neighbrhood sql.NullString
		city        sql.NullString
		state       sql.NullString
		addrCreated sql.NullTime
		addrUpdated sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Age, &u.CreatedAt, &u.UpdatedAt,
		&addrID, &addrUserID, &cep, &street, &neighbrhood, &city, &state, &addrCreated, &addrUpdated,
	); err != nil {
		return nil, err
	}
	if addrID.Valid {
		u.Address = &entity.Address{
			ID:           addrID.Int64,
			UserID:       addrUserID.Int64,
			CEP:          cep.String,
			Street:       street.String,
			Neighborhood: neighbrhood.String,
			City:         city.String,
			State:        state.String,
			CreatedAt:    addrCreated.Time,
			UpdatedAt:    addrUpdated.Time,
		}
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
