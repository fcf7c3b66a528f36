package service

import (
	"Touchline/internal/api/config"
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, e *testEnv, username, email string) {
	t.Helper()
	_, err := e.users.Register(context.Background(), &dto.RegisterDTO{
		Username:             username,
		Email:                email,
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	require.NoError(t, err)
}

func TestUser_RegisterAndAuthenticate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	user, err := e.users.Register(ctx, &dto.RegisterDTO{
		Username:             "Gunner",
		Email:                "Gunner@Example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "gunner@example.com", user.Email)
	assert.Equal(t, "Gunner", user.Name)
	assert.Len(t, user.RememberToken, 32)

	byName, err := e.users.Authenticate(ctx, "gunner", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := e.users.Authenticate(ctx, "GUNNER@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = e.users.Authenticate(ctx, "gunner", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = e.users.Authenticate(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = e.users.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrMissingLoginCredentials)

	remembered, err := e.users.GetByRememberToken(ctx, user.RememberToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, remembered.ID)
	_, err = e.users.GetByRememberToken(ctx, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUser_RegisterCollectsAllMessages(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.users.Register(ctx, &dto.RegisterDTO{
		Username:             "ALICE",
		Email:                "alice@example.com",
		Password:             "123",
		PasswordConfirmation: "456",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{
		"密码至少 6 位",
		"两次输入的密码不一致",
		ErrUserUsernameExist.Error(),
		ErrUserEmailExist.Error(),
	}, verr.Messages)

	users, err := e.users.List(ctx, false, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), users.Total)
}

func TestUser_Availability(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ok, err := e.users.CheckUsername(ctx, "Alice", 0)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = e.users.CheckUsername(ctx, "alice", e.alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = e.users.CheckEmail(ctx, "fresh@example.com", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = e.users.CheckEmail(ctx, " ", 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUser_SettingsRequireCurrentPassword(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	register(t, e, "keeper", "keeper@example.com")
	user, err := e.users.Authenticate(ctx, "keeper", "secret1")
	require.NoError(t, err)

	_, err = e.users.UpdateAccount(ctx, user, &dto.AccountDTO{Username: "keeper2", Email: "k2@example.com", CurrentPassword: "bad"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
	_, err = e.users.UpdateAccount(ctx, user, &dto.AccountDTO{Username: "bob", Email: "k2@example.com", CurrentPassword: "secret1"})
	assert.ErrorIs(t, err, ErrUserUsernameExist)

	d, err := e.users.UpdateAccount(ctx, user, &dto.AccountDTO{Username: "keeper2", Email: "K2@example.com", CurrentPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "keeper2", d.Username)
	assert.Equal(t, "k2@example.com", d.Email)

	err = e.users.UpdatePassword(ctx, user, &dto.PasswordDTO{CurrentPassword: "secret1", Password: "newpass", PasswordConfirmation: "other"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, e.users.UpdatePassword(ctx, user, &dto.PasswordDTO{CurrentPassword: "secret1", Password: "newpass", PasswordConfirmation: "newpass"}))
	_, err = e.users.Authenticate(ctx, "k2@example.com", "newpass")
	assert.NoError(t, err)
}

func TestUser_AdminActions(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	assert.ErrorIs(t, e.users.Lock(ctx, e.admin, e.admin.ID), ErrUserLockSelf)
	other := e.newUser(t, "moderator", true)
	assert.ErrorIs(t, e.users.Lock(ctx, e.admin, other.ID), ErrUserLockAdmin)
	assert.ErrorIs(t, e.users.Destroy(ctx, e.admin, other.ID), ErrUserDeleteAdmin)
	assert.ErrorIs(t, e.users.Destroy(ctx, e.admin, e.admin.ID), ErrUserDeleteSelf)

	require.NoError(t, e.users.Lock(ctx, e.admin, e.bob.ID))
	locked, err := e.users.List(ctx, true, 1)
	require.NoError(t, err)
	require.Len(t, locked.Users, 1)
	assert.Equal(t, e.bob.ID, locked.Users[0].ID)

	require.NoError(t, e.users.Unlock(ctx, e.admin, e.bob.ID))
	locked, err = e.users.List(ctx, true, 1)
	require.NoError(t, err)
	assert.Empty(t, locked.Users)

	require.NoError(t, e.users.Destroy(ctx, e.admin, e.bob.ID))
	_, err = e.users.GetByID(ctx, e.bob.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUser_IssueAppSession(t *testing.T) {
	e := newTestEnv(t)
	security.InitJWT(config.ServerConfig{JWTSecret: "test-secret", JWTExpireHours: 1})

	session, err := e.users.IssueAppSession(context.Background(), e.alice)
	require.NoError(t, err)
	assert.Equal(t, e.alice.RememberToken, session.RememberToken)
	claims, err := security.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, e.alice.ID, claims.UserID)
}
