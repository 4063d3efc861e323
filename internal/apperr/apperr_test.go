package apperr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("Name, email, and message are required", "name", "message")
	require.Equal(t, "Name, email, and message are required (name, message)", err.Error())

	wrapped := errors.Wrap(err, "submit contact")
	require.True(t, IsValidation(wrapped))
	require.True(t, IsDomain(wrapped))
}

func TestIsDomain(t *testing.T) {
	require.True(t, IsDomain(errors.Wrap(ErrNotFound, "get tire")))
	require.True(t, IsDomain(ErrAlreadyExists))
	require.False(t, IsDomain(errors.New("connection refused")))
	require.False(t, IsDomain(ErrStoreUnavailable))
}
