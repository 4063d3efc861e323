package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "test@example.com", NormalizeEmail(" Test@Example.com "))
	require.Equal(t, "", NormalizeEmail("   "))
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "test@example.com", "first.last@sub.domain.org"} {
		require.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"bad", "a@b", "@b.co", "a @b.co", "a@b .co", "", "a@@b.co"} {
		require.False(t, ValidEmail(bad), bad)
	}
}
