// Package users provides the PostgreSQL-backed repository for user accounts.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/dbx"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPublic(s scanner) (*models.User, error) {
	u := &models.User{}
	var role string
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return u, nil
}

func wrap(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if dbx.IsUniqueViolation(err) {
		return common.ErrorAlreadyExists
	}
	return fmt.Errorf("db error: %w", err)
}

// Create inserts user and fills in the generated id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.Password, string(user.Role)).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, wrap(err)
	}
	return user, nil
}

// GetByEmail returns the full row, password hash included.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u := &models.User{}
	var role string
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, wrap(err)
	}
	u.Role = models.Role(role)
	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u, err := scanPublic(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanPublic(rows)
		if err != nil {
			return nil, wrap(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return users, nil
}

// Update applies the non-nil fields of update and sets updated_at. The
// password, if present, must already be hashed.
func (r *PostgresRepository) Update(ctx context.Context, id int64, update models.UserUpdate, updatedAt time.Time) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    password = COALESCE($4, password),
		    role = COALESCE($5, role),
		    updated_at = $6
		WHERE id = $1
		RETURNING id, name, email, role, created_at, updated_at
	`
	var role *string
	if update.Role != nil {
		s := string(*update.Role)
		role = &s
	}

	u, err := scanPublic(r.db.QueryRowContext(ctx, query,
		id, update.Name, update.Email, update.Password, role, updatedAt))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}

// Delete removes the row and returns what it held.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name, email, role, created_at, updated_at
	`
	u, err := scanPublic(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(err)
	}
	return u, nil
}
