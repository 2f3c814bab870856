// Package models holds the persistent user record and the shapes derived
// from it.
package models

import "time"

// Role is the authorization role of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a row of the users table. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Public returns the projection of u that may leave the server.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Summary returns the reduced projection used by sign-up and sign-in.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// PublicUser is the client-facing projection of a user. It has no password
// field at all.
type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is returned by the auth endpoints.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUser carries sign-up input to the auth service. Password is plain text.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// UserUpdate is a partial update; nil fields are left unchanged. Password is
// plain text until the service hashes it.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *Role
}

// Empty reports whether no field is set.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.Role == nil
}
