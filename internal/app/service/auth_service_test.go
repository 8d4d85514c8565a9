package service

import (
	"testing"
	"time"

	"github.com/haungo2109/be-thamhienmauto/config"
	"github.com/haungo2109/be-thamhienmauto/internal/app/repository"
	"github.com/haungo2109/be-thamhienmauto/internal/db"
	"github.com/haungo2109/be-thamhienmauto/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, config.JWTConfig{
		Secret:             "test-jwt-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	})
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{
			name: "Valid registration",
			req: RegisterRequest{
				Email:    "test@example.com",
				Password: "password123",
				Name:     "Test User",
				Phone:    "0901234567",
			},
			wantErr: nil,
		},
		{
			name: "Duplicate email",
			req: RegisterRequest{
				Email:    "test@example.com",
				Password: "password456",
				Name:     "Another User",
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, tt.req.Email, user.Email)
				assert.NotEqual(t, tt.req.Password, user.PasswordHash)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register(RegisterRequest{
		Email:    "login@example.com",
		Password: "password123",
		Name:     "Login User",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr error
	}{
		{
			name:    "Valid credentials",
			req:     LoginRequest{Email: "login@example.com", Password: "password123"},
			wantErr: nil,
		},
		{
			name:    "Wrong password",
			req:     LoginRequest{Email: "login@example.com", Password: "wrongpassword"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "Unknown email",
			req:     LoginRequest{Email: "nobody@example.com", Password: "password123"},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)

				claims, err := util.ValidateToken(tokens.AccessToken, "test-jwt-secret")
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, user.Email, claims.Email)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, tokens, err := authService.Register(RegisterRequest{
		Email:    "refresh@example.com",
		Password: "password123",
		Name:     "Refresh User",
	})
	require.NoError(t, err)

	fresh, err := authService.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)

	_, err = authService.RefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register(RegisterRequest{
		Email:    "profile@example.com",
		Password: "password123",
		Name:     "Old Name",
	})
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "New Name", "0907654321", "https://img/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "0907654321", updated.Phone)
	assert.Equal(t, "https://img/avatar.png", updated.AvatarURL)

	_, err = authService.GetProfile(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
