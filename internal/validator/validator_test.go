package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	require.NoError(t, Email("ana@example.com"))
	require.NoError(t, Email("  padded@example.com  "))

	require.ErrorIs(t, Email(""), ErrInvalidEmailFormat)
	require.ErrorIs(t, Email("no-at-sign"), ErrInvalidEmailFormat)
	require.ErrorIs(t, Email("@nouser.com"), ErrInvalidEmailFormat)
}

func TestPassword(t *testing.T) {
	require.NoError(t, Password("sturdy-enough-1"))

	require.ErrorIs(t, Password("short"), ErrPasswordTooShort)
	require.ErrorIs(t, Password("password123"), ErrWeakPassword)
	require.ErrorIs(t, Password("QWERTYUIOP"), ErrWeakPassword)
}
