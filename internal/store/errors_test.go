package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "wrapped ErrTaskNotFound", err: fmt.Errorf("get task: %w", ErrTaskNotFound), expected: true},
		{name: "duplicate", err: ErrUsernameExists, expected: false},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("task", "delete", "no rows", ErrTaskNotFound),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrUsernameExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create user: %w", ErrUsernameExists)))
	assert.False(t, IsDuplicateError(ErrUserNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	inner := errors.New("driver exploded")
	err := NewStoreError("user", "create", "insert failed", inner)

	assert.Equal(t, "create operation on user failed: insert failed: driver exploded", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewStoreError("task", "list", "bad filter", nil)
	assert.Equal(t, "list operation on task failed: bad filter", bare.Error())
}
