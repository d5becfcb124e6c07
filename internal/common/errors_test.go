package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type messengerErr struct{}

func (messengerErr) Error() string       { return "internal detail" }
func (messengerErr) UserMessage() string { return "friendly text" }

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("boom"), want: "boom"},
		{name: "user error", err: NewUserError("Could not read files", errors.New("EOF")), want: "Could not read files"},
		{name: "wrapped user error", err: fmt.Errorf("loading: %w", NewUserError("Could not read files", nil)), want: "Could not read files"},
		{name: "messenger", err: fmt.Errorf("wrapped: %w", messengerErr{}), want: "friendly text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("Save failed", cause)

	assert.Equal(t, "Save failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Save failed", NewUserError("Save failed", nil).Error())
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		_, err := ParseLevel(level)
		assert.NoError(t, err, level)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
