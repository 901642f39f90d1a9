package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginAndVerify(t *testing.T) {
	m, err := NewManager("admin", "", "secret", time.Hour)
	require.NoError(t, err)

	_, _, err = m.Login("wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	token, expires, err := m.Login("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, claims.Role)
}

func TestNewManagerWithHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	m, err := NewManager("ignored", string(hash), "secret", time.Hour)
	require.NoError(t, err)

	_, _, err = m.Login("ignored")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, _, err = m.Login("s3cret")
	assert.NoError(t, err)

	_, err = NewManager("", "not-a-hash", "secret", time.Hour)
	assert.Error(t, err)
}

func TestNewManagerRequiresSecrets(t *testing.T) {
	_, err := NewManager("admin", "", "", time.Hour)
	assert.Error(t, err)
	_, err = NewManager("", "", "secret", time.Hour)
	assert.Error(t, err)
}

func TestVerifyRejects(t *testing.T) {
	m, err := NewManager("admin", "", "secret", time.Hour)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		token, _, err := m.Login("admin")
		require.NoError(t, err)

		later := *m
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewManager("admin", "", "other", time.Hour)
		require.NoError(t, err)
		token, _, err := other.Login("admin")
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong role", func(t *testing.T) {
		claims := Claims{
			Role: "viewer",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
