package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/dmitrijs2005/acquisitions/internal/server/validation"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

// PromptAdmin asks for the new administrator's name, email and password
// (twice) and validates them with the sign-up rules.
func PromptAdmin(reader *bufio.Reader, w io.Writer, v *validation.Validator) (models.NewUser, error) {
	name, err := GetSimpleText(reader, "Enter admin name", w)
	if err != nil {
		return models.NewUser{}, err
	}

	email, err := GetSimpleText(reader, "Enter admin email", w)
	if err != nil {
		return models.NewUser{}, err
	}

	pw, err := GetPassword("Enter password", w)
	if err != nil {
		return models.NewUser{}, err
	}
	defer common.WipeByteArray(pw)

	confirm, err := GetPassword("Repeat password", w)
	if err != nil {
		return models.NewUser{}, err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(pw, confirm) {
		return models.NewUser{}, ErrPasswordMismatch
	}

	req := validation.SignupRequest{
		Name:     name,
		Email:    email,
		Password: string(pw),
		Role:     string(models.RoleAdmin),
	}
	if errs := v.Signup(&req); len(errs) > 0 {
		return models.NewUser{}, &ValidationError{Fields: errs}
	}

	fmt.Fprintf(w, "Creating administrator %s\n", req.Email)
	return req.NewUser(), nil
}

// UserCreator stores a new account.
type UserCreator interface {
	CreateUser(ctx context.Context, in models.NewUser) (*models.User, error)
}

// CreateAdmin prompts for an administrator and stores it through users.
func CreateAdmin(ctx context.Context, reader *bufio.Reader, w io.Writer, v *validation.Validator, users UserCreator) (*models.User, error) {
	in, err := PromptAdmin(reader, w, v)
	if err != nil {
		return nil, err
	}

	user, err := users.CreateUser(ctx, in)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return nil, fmt.Errorf("user with email %s already exists: %w", in.Email, err)
	}
	if err != nil {
		return nil, fmt.Errorf("create administrator: %w", err)
	}
	return user, nil
}
