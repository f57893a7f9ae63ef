package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/voyage/backend/internal/auth"
)

func TestJWTManager_IssueVerify(t *testing.T) {
	m := auth.NewJWTManager("s3cret", time.Hour)
	id := uuid.New()

	token, err := m.Issue(id, "asha@example.com")
	require.NoError(t, err)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got.UserID)
	assert.Equal(t, "asha@example.com", got.Email)
}

func TestJWTManager_Expired(t *testing.T) {
	m := auth.NewJWTManager("s3cret", time.Hour)
	past := m.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })

	token, err := past.Issue(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := auth.NewJWTManager("one", 0).Issue(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = auth.NewJWTManager("two", 0).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := auth.Claims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewJWTManager("s3cret", 0).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTManager_BadUserID(t *testing.T) {
	claims := auth.Claims{
		UserID: "42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = auth.NewJWTManager("s3cret", 0).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	_, err := auth.NewJWTManager("s3cret", 0).Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
