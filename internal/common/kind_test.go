package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"duplicate", ErrorAlreadyExists, KindConflict},
		{"wrapped not found", fmt.Errorf("user 7: %w", ErrorNotFound), KindNotFound},
		{"invalid password", ErrInvalidPassword, KindInvalidCredentials},
		{"invalid token", ErrInvalidToken, KindInvalidToken},
		{"signing", ErrTokenSigning, KindUnknown},
		{"db failure", fmt.Errorf("db error: %w", errors.New("conn refused")), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
