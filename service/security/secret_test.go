package security

import (
	"testing"
	"venuebook/util"

	"github.com/stretchr/testify/require"
)

// Test Bcrypt hash and compare logic
func TestBcryptHash(t *testing.T) {
	// Create test data
	str := util.RandomString(10)

	// Bcrypt hash
	hashed, err := BcryptHash(str)
	require.NoError(t, err)

	// Compare hash and raw string
	require.Equal(t, true, BcryptCompare(hashed, str))
	require.Equal(t, false, BcryptCompare(hashed, str+"x"))
}
