package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("user-123", "paolo")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "paolo", claims.Username)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateAccessToken("user-123", "paolo")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	token, err := NewManager("test-secret", -time.Minute).GenerateAccessToken("user-123", "paolo")
	require.NoError(t, err)

	_, err = NewManager("test-secret", -time.Minute).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).ValidateToken("not-a-token")
	assert.Error(t, err)
}
