package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUsers is an in-memory UserFinder
type memoryUsers map[string]*models.User

func (m memoryUsers) FindUserByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := m[id]; ok {
		return user, nil
	}
	return nil, types.NotFound("user %s was not found", id)
}

func TestIssueAndVerify(t *testing.T) {
	user := &models.User{ID: "7c4c1f0e-7a35-4b0b-9d0a-111111111111", Username: "alice123"}
	svc := NewSessionService("secret", time.Hour, memoryUsers{user.ID: user})

	token, err := svc.Issue(user)
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	user := &models.User{ID: "user-1"}
	svc := NewSessionService("secret", time.Hour, memoryUsers{})

	otherKey := NewSessionService("other", time.Hour, memoryUsers{})
	forged, err := otherKey.Issue(user)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":    "not.a.token",
		"forged":     forged,
		"unsigned":   unsigned,
		"no subject": noSubject,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.True(t, types.IsAuthReason(err, types.ReasonInvalidToken), "got %v", err)
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	user := &models.User{ID: "user-1"}
	svc := NewSessionService("secret", time.Hour, memoryUsers{})

	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.Issue(user)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.True(t, types.IsAuthReason(err, types.ReasonExpiredToken), "got %v", err)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	user := &models.User{ID: "user-1"}
	svc := NewSessionService("secret", 0, memoryUsers{})

	svc.now = func() time.Time { return time.Now().Add(-24 * 365 * time.Hour) }
	token, err := svc.Issue(user)
	require.NoError(t, err)

	svc.now = time.Now
	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestAuthenticate(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "alice123"}
	users := memoryUsers{user.ID: user}
	svc := NewSessionService("secret", time.Hour, users)
	ctx := context.Background()

	token, err := svc.Issue(user)
	require.NoError(t, err)

	// A rename does not invalidate the token
	user.Username = "alice456"
	found, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice456", found.Username)

	delete(users, user.ID)
	_, err = svc.Authenticate(ctx, token)
	assert.True(t, types.IsAuthReason(err, types.ReasonInvalidToken), "got %v", err)
}
