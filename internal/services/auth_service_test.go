package services_test

import (
	"fmt"
	"testing"
	"time"

	"casabeleza/internal/models"
	"casabeleza/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockAdminRepository is a mock implementation of repositories.AdminRepository.
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(admin *models.AdminUser) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByUsername(username string) (*models.AdminUser, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) GetByID(id uint) (*models.AdminUser, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(userRepo *MockUserRepository, adminRepo *MockAdminRepository) *services.AuthService {
	return services.NewAuthService(userRepo, adminRepo, testJWTSecret)
}

func TestAuthService_RegisterUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	adminRepo := new(MockAdminRepository)
	authService := newAuthService(userRepo, adminRepo)

	user := &models.User{Name: "Ana", Email: "ana@example.com"}

	userRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("user with email %s not found", user.Email)).Once()
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	token, err := authService.RegisterUser(user, "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	userRepo.AssertExpectations(t)

	// Duplicate email must surface the storefront message and never hash or
	// create anything.
	userRepo.On("GetByEmail", user.Email).Return(&models.User{ID: 1, Email: user.Email}, nil).Once()
	_, err = authService.RegisterUser(&models.User{Name: "Ana", Email: user.Email}, "secret1")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	assert.Equal(t, "E-mail já cadastrado", err.Error())
	userRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	adminRepo := new(MockAdminRepository)
	authService := newAuthService(userRepo, adminRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	user := &models.User{ID: 7, Name: "Ana", Email: "ana@example.com", PasswordHash: string(hash)}

	userRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser(user.Email, "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	userRepo.AssertExpectations(t)

	// Wrong password and unknown email both collapse to the same generic
	// error.
	userRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.LoginUser(user.Email, "wrongpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, fmt.Errorf("user with email ghost@example.com not found")).Once()
	_, _, err = authService.LoginUser("ghost@example.com", "secret1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	userRepo.AssertExpectations(t)
}

func TestAuthService_LoginAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	adminRepo := new(MockAdminRepository)
	authService := newAuthService(userRepo, adminRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &models.AdminUser{ID: 1, Username: "admin", Email: "admin@casabeleza.com", PasswordHash: string(hash)}

	adminRepo.On("GetByUsername", "admin").Return(admin, nil).Once()
	token, loggedIn, err := authService.LoginAdmin("admin", "admin123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, admin.ID, loggedIn.ID)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "admin", claims["username"])
	adminRepo.AssertExpectations(t)

	adminRepo.On("GetByUsername", "admin").Return(admin, nil).Once()
	_, _, err = authService.LoginAdmin("admin", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	adminRepo.AssertExpectations(t)
}

func TestAuthService_TokenLifetimes(t *testing.T) {
	userRepo := new(MockUserRepository)
	adminRepo := new(MockAdminRepository)
	authService := newAuthService(userRepo, adminRepo)

	userToken, err := authService.GenerateUserToken(&models.User{ID: 1, Email: "a@x.com"})
	assert.NoError(t, err)
	adminToken, err := authService.GenerateAdminToken(&models.AdminUser{ID: 1, Username: "admin"})
	assert.NoError(t, err)

	userClaims, err := authService.ValidateToken(userToken)
	assert.NoError(t, err)
	adminClaims, err := authService.ValidateToken(adminToken)
	assert.NoError(t, err)

	userTTL := int64(userClaims["exp"].(float64)) - int64(userClaims["iat"].(float64))
	adminTTL := int64(adminClaims["exp"].(float64)) - int64(adminClaims["iat"].(float64))
	assert.Equal(t, int64(24*60*60), userTTL, "user tokens live 24h")
	assert.Equal(t, int64(8*60*60), adminTTL, "admin tokens live 8h")
}

func TestAuthService_ValidateToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	adminRepo := new(MockAdminRepository)
	authService := newAuthService(userRepo, adminRepo)

	// Garbage token.
	_, err := authService.ValidateToken("not.a.token")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.Error(t, err)

	// Token signed with a different secret.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": 1,
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(forgedString)
	assert.Error(t, err)
}

func TestAuthService_AdminExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	adminRepo := new(MockAdminRepository)
	authService := newAuthService(userRepo, adminRepo)

	adminRepo.On("GetByID", uint(1)).Return(&models.AdminUser{ID: 1}, nil).Once()
	assert.True(t, authService.AdminExists(1))

	adminRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("admin user with ID 99 not found")).Once()
	assert.False(t, authService.AdminExists(99))
	adminRepo.AssertExpectations(t)
}
