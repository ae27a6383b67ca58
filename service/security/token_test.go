package security

import (
	"math/rand"
	"testing"
	"venuebook/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	// Create test data
	id := uuid.New()
	role := []db.Role{db.RoleAdmin, db.RoleOwner, db.RoleUser}[rand.Intn(3)]

	// Create token
	token, err := service.CreateToken(id, role)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Verify token
	result, err := service.VerifyToken(token)
	require.NoError(t, err)
	require.NotEmpty(t, result)

	// Compare the test data with the extract claims
	require.Equal(t, id, result.ID)
	require.Equal(t, role, result.Role)
	require.Equal(t, Issuer, result.Issuer)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	other := NewJWTService([]byte("ANOTHER-SECRET-KEY"), tokenExpiration)

	token, err := other.CreateToken(uuid.New(), db.RoleUser)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyTokenRejectsUnknownRole(t *testing.T) {
	token, err := service.CreateToken(uuid.New(), db.Role("superuser"))
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}
