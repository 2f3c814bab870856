package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	body, err := fs.ReadFile(Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	s := string(body)
	assert.True(t, strings.Contains(s, "-- +goose Up"))
	assert.True(t, strings.Contains(s, "-- +goose Down"))
	assert.Contains(t, s, "email       VARCHAR(255) NOT NULL UNIQUE")
}
