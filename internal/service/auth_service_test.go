package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"perpustakaan/internal/auth"
	"perpustakaan/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, role string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(m *MockUserRepository)
		expectedError error
		check         func(t *testing.T, user *model.User)
	}{
		{
			name: "successful registration defaults to member role",
			input: RegisterInput{
				Username:    "budi",
				Password:    "password123",
				FullName:    "Budi Santoso",
				Email:       "budi@example.com",
				PhoneNumber: "0812",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "budi").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.Equal(t, model.RoleUser, user.Role)
				assert.Equal(t, "Budi Santoso", user.FullName)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, "password123", user.PasswordHash)
			},
		},
		{
			name: "admin registration carries no borrower profile",
			input: RegisterInput{
				Username: "kepala",
				Password: "password123",
				Role:     model.RoleAdmin,
				FullName: "Should Be Dropped",
				Email:    "drop@example.com",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "kepala").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.Equal(t, model.RoleAdmin, user.Role)
				assert.Empty(t, user.FullName)
				assert.Empty(t, user.Email)
				assert.Empty(t, user.PhoneNumber)
			},
		},
		{
			name: "username already taken",
			input: RegisterInput{
				Username: "budi",
				Password: "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "budi").Return(&model.User{Username: "budi"}, nil)
			},
			expectedError: ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			user, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				tt.check(t, user)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	member := &model.User{
		ID:           42,
		Username:     "budi",
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		FullName:     "Budi Santoso",
	}

	tests := []struct {
		name          string
		username      string
		password      string
		portalRole    string
		setupMock     func(repo *MockUserRepository, store *MockTokenStore)
		expectedError error
	}{
		{
			name:       "successful member login",
			username:   "budi",
			password:   "password123",
			portalRole: model.RoleUser,
			setupMock: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByUsername", mock.Anything, "budi").Return(member, nil)
				store.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(42), model.RoleUser, auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:       "unknown username",
			username:   "ghost",
			password:   "password123",
			portalRole: model.RoleUser,
			setupMock: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			username:   "budi",
			password:   "nope",
			portalRole: model.RoleUser,
			setupMock: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByUsername", mock.Anything, "budi").Return(member, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:       "member on the admin portal",
			username:   "budi",
			password:   "password123",
			portalRole: model.RoleAdmin,
			setupMock: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByUsername", mock.Anything, "budi").Return(member, nil)
			},
			expectedError: ErrWrongPortal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockStore)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, mockStore)

			accessToken, refreshToken, user, err := svc.Login(context.Background(), tt.username, tt.password, tt.portalRole)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, uint(42), user.ID)

				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, uint(42), claims.UserID)
				assert.Equal(t, model.RoleUser, claims.Role)
				assert.Equal(t, "Budi Santoso", claims.Name)
			}

			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(42, model.RoleUser, "Budi")
		assert.NoError(t, err)

		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(42), model.RoleUser, nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore)
		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		mockStore.AssertExpectations(t)
	})

	t.Run("refresh token unknown to the store is rejected", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(42, model.RoleUser, "Budi")
		assert.NoError(t, err)

		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", assert.AnError)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore)
		_, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		mockStore.AssertExpectations(t)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
