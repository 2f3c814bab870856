package validation

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/acquisitions/internal/server/models"
)

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// SigninRequest is the body of POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the body of PUT /users/:id. Absent fields stay nil.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Signup normalizes and validates r.
func (v *Validator) Signup(r *SignupRequest) []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	return v.Struct(r)
}

// Signin normalizes and validates r.
func (v *Validator) Signin(r *SigninRequest) []FieldError {
	r.Email = normalizeEmail(r.Email)
	return v.Struct(r)
}

// Update normalizes and validates r. An update must set at least one field.
func (v *Validator) Update(r *UpdateUserRequest) []FieldError {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.Email != nil {
		e := normalizeEmail(*r.Email)
		r.Email = &e
	}

	if errs := v.Struct(r); errs != nil {
		return errs
	}
	if r.UserUpdate().Empty() {
		return []FieldError{{Field: "body", Message: "At least one field must be provided for update"}}
	}
	return nil
}

// UserID parses the :id path parameter as a positive integer.
func (v *Validator) UserID(raw string) (int64, []FieldError) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, []FieldError{{Field: "id", Message: "Invalid user ID"}}
	}
	return id, nil
}

// NewUser converts a validated sign-up request.
func (r *SignupRequest) NewUser() models.NewUser {
	return models.NewUser{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     models.Role(r.Role),
	}
}

// UserUpdate converts a validated update request.
func (r *UpdateUserRequest) UserUpdate() models.UserUpdate {
	u := models.UserUpdate{Name: r.Name, Email: r.Email, Password: r.Password}
	if r.Role != nil {
		role := models.Role(*r.Role)
		u.Role = &role
	}
	return u
}
