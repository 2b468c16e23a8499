package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"vibefy/internal/domain"
	"vibefy/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE COLLATE NOCASE,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	profile_image TEXT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectUserColumns = `SELECT id, email, username, password_hash, profile_image, created_at, updated_at FROM users`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           int64          `db:"id"`
	Email        string         `db:"email"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	ProfileImage sql.NullString `db:"profile_image"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	user := &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Local(),
		UpdatedAt:    r.UpdatedAt.Local(),
	}
	if r.ProfileImage.Valid {
		v := r.ProfileImage.String
		user.ProfileImage = &v
	}
	return user
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Create inserts the user. Uniqueness is decided by the insert itself, so a
// duplicate email or username comes back as repository.ErrEmailTaken or
// repository.ErrUsernameTaken even when a prior existence check passed.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	var profileImage any
	if user.ProfileImage != nil {
		profileImage = *user.ProfileImage
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, username, password_hash, profile_image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email,
		user.Username,
		user.PasswordHash,
		profileImage,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users.email"):
			return 0, fmt.Errorf("insert user: %w", repository.ErrEmailTaken)
		case isUniqueViolation(err, "users.username"):
			return 0, fmt.Errorf("insert user: %w", repository.ErrUsernameTaken)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email); err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username); err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, selectUserColumns+` WHERE email = ?`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, selectUserColumns+` WHERE id = ?`, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return row.toDomain(), nil
}
