// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"jobportal-service/internal/domain/user"
	xerrors "jobportal-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, name, email, phone, address, role, niches, cover_letter,
	resume_key, resume_url, resume_file_name, password_hash, created_at
`

// Create inserts a new user and fills in generated fields
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, phone, address, role, niches, cover_letter,
		                   resume_key, resume_url, resume_file_name, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	var resume user.Resume
	if u.Resume != nil {
		resume = *u.Resume
	}

	err := r.db.QueryRow(ctx, query,
		u.Name, u.Email, u.Phone, u.Address, u.Role, pq.Array(u.Niches), u.CoverLetter,
		nullable(resume.Key), nullable(resume.URL), nullable(resume.FileName), u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return xerrors.ErrDuplicateEntry
	}
	return xerrors.Wrap(err, "failed to insert user")
}

// FindByEmail retrieves a user by email (case-insensitive)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(ctx, query, email)
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		u                  user.User
		niches             []string
		key, url, fileName *string
	)

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.Role, pq.Array(&niches), &u.CoverLetter,
		&key, &url, &fileName, &u.PasswordHash, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	u.Niches = niches
	if key != nil || url != nil {
		u.Resume = &user.Resume{Key: deref(key), URL: deref(url), FileName: deref(fileName)}
	}
	return &u, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
