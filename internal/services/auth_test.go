package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/pocket-notes/internal/kv"
	"github.com/sbilibin2017/pocket-notes/internal/models"
	"github.com/sbilibin2017/pocket-notes/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		username  string
		pin       string
		mockSetup func(m *MockAccountStore)
		wantErr   error
		wantUser  string
	}{
		{
			name:     "successful sign up",
			username: " alice ",
			pin:      "1234",
			mockSetup: func(m *MockAccountStore) {
				m.EXPECT().RegisterUser(gomock.Any(), "alice", "1234").Return(nil)
				m.EXPECT().SetCurrentUser(gomock.Any(), "alice").Return(nil)
			},
			wantUser: "alice",
		},
		{
			name:     "username taken",
			username: "Alice",
			pin:      "5678",
			mockSetup: func(m *MockAccountStore) {
				m.EXPECT().RegisterUser(gomock.Any(), "Alice", "5678").Return(ErrUsernameTaken)
			},
			wantErr: ErrUsernameTaken,
		},
		{
			name:     "empty pin",
			username: "bob",
			wantErr:  ErrEmptyCredentials,
		},
		{
			name:     "blank username",
			username: "   ",
			pin:      "1",
			wantErr:  ErrEmptyCredentials,
		},
		{
			name:     "pointer write fails",
			username: "carol",
			pin:      "1",
			mockSetup: func(m *MockAccountStore) {
				m.EXPECT().RegisterUser(gomock.Any(), "carol", "1").Return(nil)
				m.EXPECT().SetCurrentUser(gomock.Any(), "carol").Return(kv.ErrStorageUnavailable)
			},
			wantErr: kv.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := NewMockAccountStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(accounts)
			}
			sess := NewSession()

			err := NewAuthService(accounts).SignUp(context.Background(), sess, tt.username, tt.pin)

			username, active := sess.Username()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, active)
				return
			}
			assert.NoError(t, err)
			assert.True(t, active)
			assert.Equal(t, tt.wantUser, username)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	accounts := repositories.NewAccountRepository(kv.NewMemoryStore(), nil)
	svc := NewAuthService(accounts)
	require.NoError(t, accounts.RegisterUser(ctx, "alice", "1234"))

	sess := NewSession()

	got, err := svc.Login(ctx, sess, "ALICE", "1234")
	require.NoError(t, err)
	assert.Equal(t, "alice", got, "session uses the registered spelling")

	cur, _ := accounts.GetCurrentUser(ctx)
	assert.Equal(t, "alice", cur)

	_, err = svc.Login(ctx, sess, "alice", "0000")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	username, active := sess.Username()
	assert.True(t, active, "failed login keeps the current session")
	assert.Equal(t, "alice", username)

	_, err = svc.Login(ctx, sess, "nobody", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, sess, "", "")
	assert.ErrorIs(t, err, ErrEmptyCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	accounts := repositories.NewAccountRepository(kv.NewMemoryStore(), nil)
	svc := NewAuthService(accounts)
	sess := NewSession()

	require.NoError(t, svc.SignUp(ctx, sess, "alice", "1234"))
	require.NoError(t, svc.Logout(ctx, sess))

	_, active := sess.Username()
	assert.False(t, active)
	cur, _ := accounts.GetCurrentUser(ctx)
	assert.Empty(t, cur)
}

func TestAuthService_Logout_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := NewMockAccountStore(ctrl)
	accounts.EXPECT().SetCurrentUser(gomock.Any(), "").Return(errors.New("disk full"))

	sess := NewSession()
	sess.begin("alice")

	err := NewAuthService(accounts).Logout(context.Background(), sess)
	assert.Error(t, err)
	owner, active := sess.Username()
	assert.True(t, active, "failed logout keeps the session")
	assert.Equal(t, "alice", owner)
}

func TestAuthService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("pointer to registered user", func(t *testing.T) {
		store := kv.NewMemoryStore()
		accounts := repositories.NewAccountRepository(store, nil)
		require.NoError(t, accounts.RegisterUser(ctx, "alice", "1234"))
		require.NoError(t, accounts.SetCurrentUser(ctx, "alice"))

		sess := NewSession()
		got, err := NewAuthService(accounts).Restore(ctx, sess)
		assert.NoError(t, err)
		assert.Equal(t, "alice", got)
		owner, _ := sess.Username()
		assert.Equal(t, "alice", owner)
	})

	t.Run("pointer spelled differently restores stored spelling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		accounts := NewMockAccountStore(ctrl)
		accounts.EXPECT().GetCurrentUser(gomock.Any()).Return("ALICE", nil)
		accounts.EXPECT().ListUsers(gomock.Any()).Return([]models.User{{Username: "alice", PIN: "1234"}}, nil)

		sess := NewSession()
		got, err := NewAuthService(accounts).Restore(ctx, sess)
		assert.NoError(t, err)
		assert.Equal(t, "alice", got)
		owner, active := sess.Username()
		assert.True(t, active)
		assert.Equal(t, "alice", owner)
	})

	t.Run("dangling pointer is cleared", func(t *testing.T) {
		accounts := repositories.NewAccountRepository(kv.NewMemoryStore(), nil)
		require.NoError(t, accounts.SetCurrentUser(ctx, "ghost"))

		sess := NewSession()
		got, err := NewAuthService(accounts).Restore(ctx, sess)
		assert.NoError(t, err)
		assert.Empty(t, got)
		cur, _ := accounts.GetCurrentUser(ctx)
		assert.Empty(t, cur)
	})

	t.Run("logged out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		accounts := NewMockAccountStore(ctrl)
		accounts.EXPECT().GetCurrentUser(gomock.Any()).Return("", nil)

		sess := NewSession()
		got, err := NewAuthService(accounts).Restore(ctx, sess)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("registry read fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		accounts := NewMockAccountStore(ctrl)
		accounts.EXPECT().GetCurrentUser(gomock.Any()).Return("alice", nil)
		accounts.EXPECT().ListUsers(gomock.Any()).Return([]models.User(nil), kv.ErrStorageUnavailable)

		_, err := NewAuthService(accounts).Restore(ctx, NewSession())
		assert.ErrorIs(t, err, kv.ErrStorageUnavailable)
	})
}
