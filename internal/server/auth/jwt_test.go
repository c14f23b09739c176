package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	got, err := GetUserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -1*time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetUserIDFromToken_Invalid(t *testing.T) {
	t.Parallel()

	good, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	noUser, err := GenerateToken("", []byte("k"), time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u3"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", good, "wrong-secret"},
		{"malformed", "not.a.jwt", "k"},
		{"empty user id", noUser, "k"},
		{"alg none", unsigned, "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetUserIDFromToken(tt.token, []byte(tt.secret))
			assert.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}
}
