package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	manager, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := manager.Issue(42, "staff")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestManager_RejectsEmptySecret(t *testing.T) {
	_, err := NewManager("", time.Hour)
	require.Error(t, err)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	issuer, err := NewManager("secret-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("secret-two", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(42, "staff")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	manager, err := NewManager("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := manager.Issue(42, "staff")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.Error(t, err)
}

func TestManager_RejectsGarbage(t *testing.T) {
	manager, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = manager.Verify("not.a.token")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	require.NoError(t, err)
	assert.NotEqual(t, "correcthorse", hash)

	assert.NoError(t, CheckPassword(hash, "correcthorse"))
	assert.Error(t, CheckPassword(hash, "wronghorse"))
}
