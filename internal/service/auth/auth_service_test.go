package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Repository) {
	t.Helper()
	repo := memory.New()
	return NewService(repo, "test-secret", time.Hour, zaptest.NewLogger(t)), repo
}

func TestProvisionAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	created, err := svc.ProvisionUser(ctx, "admin", "s3cret", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)

	stored, err := repo.FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)

	res, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.Username)
	assert.Equal(t, models.RoleAdmin, res.Role)

	session, err := svc.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, session.UserID)
	assert.True(t, session.IsAdmin())
	assert.NoError(t, session.RequireAdmin())
}

func TestProvisionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.ProvisionUser(ctx, "admin", "first", models.RoleAdmin)
	require.NoError(t, err)

	created, err := svc.ProvisionUser(ctx, "admin", "second", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.Login(ctx, "admin", "first")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "admin", "second")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvisionRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ProvisionUser(ctx, " ", "pw", models.RoleUser)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.ProvisionUser(ctx, "bob", "pw", models.Role("root"))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.ProvisionUser(ctx, "clerk", "pw", models.RoleUser)
	require.NoError(t, err)

	for name, creds := range map[string][2]string{
		"unknown user":   {"ghost", "pw"},
		"wrong password": {"clerk", "nope"},
		"empty":          {"", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, creds[0], creds[1])
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestUserSessionIsNotAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.ProvisionUser(ctx, "clerk", "pw", models.RoleUser)
	require.NoError(t, err)

	res, err := svc.Login(ctx, "clerk", "pw")
	require.NoError(t, err)

	session, err := svc.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.False(t, session.IsAdmin())
	assert.ErrorIs(t, session.RequireAdmin(), ErrForbidden)
}

func TestVerifyTokenRejects(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	_, err := svc.ProvisionUser(ctx, "clerk", "pw", models.RoleUser)
	require.NoError(t, err)
	user, err := repo.FindUserByUsername(ctx, "clerk")
	require.NoError(t, err)

	expired := NewService(repo, "test-secret", time.Hour, nil)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.issue(user)
	require.NoError(t, err)

	other := NewService(repo, "other-secret", time.Hour, nil)
	foreignToken, err := other.issue(user)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		UserID: user.ID.Hex(),
		Role:   models.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"expired":        expiredToken,
		"wrong secret":   foreignToken,
		"unsigned token": noneToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyToken(token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}
