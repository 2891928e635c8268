package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_CheckPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", h)

	assert.True(t, CheckPassword(h, "admin123"))
	assert.False(t, CheckPassword(h, "admin124"))
	assert.False(t, CheckPassword(h, ""))
	assert.False(t, CheckPassword("not-a-hash", "admin123"))
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", MaxPasswordBytes+1)
	_, err := HashPassword(long)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	h, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, strings.Repeat("a", MaxPasswordBytes)))
	assert.False(t, CheckPassword(h, long))
}
