package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("DemoPass123")
	require.NoError(t, err)
	assert.NotEqual(t, "DemoPass123", hash)
	assert.True(t, CompareHashAndPassword(hash, "DemoPass123"))
	assert.False(t, CompareHashAndPassword(hash, "demopass123"))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestSpendPasswordCheckDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { SpendPasswordCheck("anything") })
}
