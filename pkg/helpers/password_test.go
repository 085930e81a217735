package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("senha123")
	require.NoError(t, err)
	require.NotEqual(t, "senha123", hash)

	require.True(t, CompareHashAndPassword(hash, "senha123"))
	require.False(t, CompareHashAndPassword(hash, "senha124"))
}
