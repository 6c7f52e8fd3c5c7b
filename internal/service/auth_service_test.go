package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
)

func recordEvents(auth AuthService) *[]AuthEvent {
	events := &[]AuthEvent{}
	auth.Subscribe(func(e AuthEvent) { *events = append(*events, e) })
	return events
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	user := &models.User{UserID: "u1", Email: "jane@example.com"}

	t.Run("Успешный вход", func(t *testing.T) {
		users := new(MockUserRepository)
		kv := newTestKV(t)
		auth := NewAuthService(users, new(MockProfileRepository), kv, testConfig())
		events := recordEvents(auth)

		users.On("VerifyPassword", mock.Anything, "jane@example.com", "secret").Return(user, nil)
		users.On("UpdateRefreshToken", mock.Anything, "u1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

		session, err := auth.SignIn(ctx, " jane@example.com ", "secret")

		require.NoError(t, err)
		assert.Equal(t, "u1", session.UserID)
		assert.True(t, session.ExpiresAt.After(time.Now()))

		_, err = auth.ValidateToken(session.AccessToken)
		assert.NoError(t, err)

		stored, ok, err := kv.Get(ctx, keyRefreshToken)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, session.RefreshToken, stored)

		require.Len(t, *events, 1)
		assert.Equal(t, models.EventSignedIn, (*events)[0].Type)
		assert.Equal(t, "u1", auth.GetSession(ctx).UserID)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		users := new(MockUserRepository)
		auth := NewAuthService(users, new(MockProfileRepository), newTestKV(t), testConfig())
		events := recordEvents(auth)

		users.On("VerifyPassword", mock.Anything, "jane@example.com", "bad").Return(nil, repository.ErrInvalidCredentials)

		_, err := auth.SignIn(ctx, "jane@example.com", "bad")

		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, *events)
		assert.Nil(t, auth.GetSession(ctx))
	})

	t.Run("Пустые поля", func(t *testing.T) {
		users := new(MockUserRepository)
		auth := NewAuthService(users, new(MockProfileRepository), newTestKV(t), testConfig())

		_, err := auth.SignIn(ctx, "", "secret")

		assert.ErrorIs(t, err, ErrValidation)
		users.AssertNotCalled(t, "VerifyPassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	auth := NewAuthService(users, profiles, newTestKV(t), testConfig())

	users.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, repository.ErrNotFound)
	users.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User"), "secret").
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).UserID = "u9"
		}).
		Return(nil)
	profiles.On("Create", mock.Anything, "u9", "user").Return(nil)
	users.On("VerifyPassword", mock.Anything, "new@example.com", "secret").
		Return(&models.User{UserID: "u9", Email: "new@example.com"}, nil)
	users.On("UpdateRefreshToken", mock.Anything, "u9", mock.Anything, mock.Anything).Return(nil)

	session, err := auth.SignUp(ctx, "new@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "u9", session.UserID)
	profiles.AssertExpectations(t)
}

func TestAuthService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Сохранённая сессия восстанавливается", func(t *testing.T) {
		users := new(MockUserRepository)
		kv := newTestKV(t)
		require.NoError(t, kv.Set(ctx, keyRefreshToken, "stored-token"))
		auth := NewAuthService(users, new(MockProfileRepository), kv, testConfig())
		events := recordEvents(auth)

		users.On("GetUserByRefreshToken", mock.Anything, "stored-token").
			Return(&models.User{UserID: "u1", Email: "a@b.c"}, nil)
		users.On("UpdateRefreshToken", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)

		session, err := auth.Restore(ctx)

		require.NoError(t, err)
		assert.Equal(t, "u1", session.UserID)
		require.Len(t, *events, 1)
		assert.Equal(t, models.EventInitialSession, (*events)[0].Type)
		assert.NotNil(t, (*events)[0].Session)
	})

	t.Run("Просроченная сессия удаляется", func(t *testing.T) {
		users := new(MockUserRepository)
		kv := newTestKV(t)
		require.NoError(t, kv.Set(ctx, keyRefreshToken, "expired"))
		auth := NewAuthService(users, new(MockProfileRepository), kv, testConfig())
		events := recordEvents(auth)

		users.On("GetUserByRefreshToken", mock.Anything, "expired").Return(nil, repository.ErrNotFound)

		session, err := auth.Restore(ctx)

		require.NoError(t, err)
		assert.Nil(t, session)
		_, ok, _ := kv.Get(ctx, keyRefreshToken)
		assert.False(t, ok)
		require.Len(t, *events, 1)
		assert.Nil(t, (*events)[0].Session)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	auth := NewAuthService(users, new(MockProfileRepository), newTestKV(t), testConfig())

	users.On("VerifyPassword", mock.Anything, mock.Anything, mock.Anything).Return(&models.User{UserID: "u1"}, nil)
	users.On("UpdateRefreshToken", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)

	_, err := auth.SignIn(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	events := recordEvents(auth)

	require.NoError(t, auth.SignOut(ctx))

	assert.Nil(t, auth.GetSession(ctx))
	require.Len(t, *events, 1)
	assert.Equal(t, models.EventSignedOut, (*events)[0].Type)
	users.AssertCalled(t, "UpdateRefreshToken", mock.Anything, "u1", "", time.Time{})
}

func TestAuthService_GetSessionRefreshesExpiredToken(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	cfg := testConfig()
	cfg.AccessTokenDuration = -time.Minute
	auth := NewAuthService(users, new(MockProfileRepository), newTestKV(t), cfg)

	users.On("VerifyPassword", mock.Anything, mock.Anything, mock.Anything).Return(&models.User{UserID: "u1"}, nil)
	users.On("UpdateRefreshToken", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)
	users.On("GetUserByRefreshToken", mock.Anything, mock.Anything).Return(nil, errors.New("revoked"))

	_, err := auth.SignIn(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	events := recordEvents(auth)

	assert.Nil(t, auth.GetSession(ctx))
	require.NotEmpty(t, *events)
	assert.Equal(t, models.EventSignedOut, (*events)[len(*events)-1].Type)
}
