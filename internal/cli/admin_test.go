package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/dmitrijs2005/acquisitions/internal/server/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptAdmin(t *testing.T) {
	stubPasswords(t, "supersecret", "supersecret")
	var out bytes.Buffer

	u, err := PromptAdmin(rdr("Root\n ROOT@Example.com \n"), &out, validation.New())
	require.NoError(t, err)
	assert.Equal(t, models.NewUser{Name: "Root", Email: "root@example.com", Password: "supersecret", Role: models.RoleAdmin}, u)
	assert.Contains(t, out.String(), "Creating administrator root@example.com")
}

func TestPromptAdmin_PasswordMismatch(t *testing.T) {
	stubPasswords(t, "supersecret", "different")
	var out bytes.Buffer

	_, err := PromptAdmin(rdr("Root\nroot@example.com\n"), &out, validation.New())
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestPromptAdmin_Invalid(t *testing.T) {
	stubPasswords(t, "123", "123")
	var out bytes.Buffer

	_, err := PromptAdmin(rdr("Root\nnot-an-email\n"), &out, validation.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := []string{}
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"email", "password"}, fields)
}

func TestPromptAdmin_ReadError(t *testing.T) {
	stubPasswords(t)
	var out bytes.Buffer

	_, err := PromptAdmin(rdr("Root\nroot@example.com\n"), &out, validation.New())
	assert.Error(t, err)
}

type fakeCreator struct {
	got models.NewUser
	err error
}

func (f *fakeCreator) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 1, Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

func TestCreateAdmin(t *testing.T) {
	stubPasswords(t, "supersecret", "supersecret")
	users := &fakeCreator{}
	var out bytes.Buffer

	u, err := CreateAdmin(context.Background(), rdr("Root\nroot@example.com\n"), &out, validation.New(), users)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, models.RoleAdmin, users.got.Role)
	assert.Equal(t, "supersecret", users.got.Password)
}

func TestCreateAdmin_Errors(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		stubPasswords(t, "supersecret", "supersecret")
		var out bytes.Buffer

		_, err := CreateAdmin(context.Background(), rdr("Root\nroot@example.com\n"), &out, validation.New(),
			&fakeCreator{err: common.ErrorAlreadyExists})
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
		assert.EqualError(t, err, "user with email root@example.com already exists: already exists")
	})

	t.Run("store failure", func(t *testing.T) {
		stubPasswords(t, "supersecret", "supersecret")
		var out bytes.Buffer

		_, err := CreateAdmin(context.Background(), rdr("Root\nroot@example.com\n"), &out, validation.New(),
			&fakeCreator{err: assert.AnError})
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		stubPasswords(t, "123", "123")
		users := &fakeCreator{}
		var out bytes.Buffer

		_, err := CreateAdmin(context.Background(), rdr("Root\nroot@example.com\n"), &out, validation.New(), users)
		assert.ErrorIs(t, err, common.ErrorValidation)
		assert.Equal(t, models.NewUser{}, users.got)
	})
}
