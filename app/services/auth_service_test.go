package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/internal/testdb"
	"github.com/shashiranjanraj/souq/pkg/auth"
	"github.com/shashiranjanraj/souq/pkg/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(testdb.Query(t))

	user, err := svc.CreateUser(ctx, services.CreateUserInput{
		Name: "Ops", Email: "Ops@Example.com", Password: "s3cret-pass", Role: rbac.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	_, err = svc.Login(ctx, "ops@example.com", "wrong-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	session, err := svc.Login(ctx, "ops@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)

	claims, err := auth.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleManager, claims.Role)

	_, err = svc.Refresh(ctx, session.Token)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	refreshed, err := svc.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ops", me.Name)
}

func TestCreateUserRejectsDuplicatesAndUnknownRoles(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(testdb.Query(t))
	in := services.CreateUserInput{Name: "A", Email: "a@example.com", Password: "password1", Role: rbac.RoleUser}

	_, err := svc.CreateUser(ctx, in)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, in)
	assert.ErrorIs(t, err, services.ErrDuplicate)

	in.Email, in.Role = "b@example.com", "root"
	_, err = svc.CreateUser(ctx, in)
	assert.ErrorIs(t, err, services.ErrInvalidRole)
}
