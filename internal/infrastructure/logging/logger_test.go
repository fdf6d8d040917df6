package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stdout"}})
	require.Error(t, err)
}

func TestNewDefaultAndDevelopment(t *testing.T) {
	require.NotNil(t, NewDefault())
	require.NotNil(t, NewDevelopment())
}

func TestWithUserReturnsChildLogger(t *testing.T) {
	base := NewDefault()
	child := base.WithUser("user-1")
	require.NotNil(t, child)
	assert.NotSame(t, base, child)
}
