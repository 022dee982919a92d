package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	require.NoError(t, CheckPassword(hash, "Password123"))
	require.Error(t, CheckPassword(hash, "Password124"))
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	require.Error(t, CheckPassword("", "anything"))
}
