package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"casabeleza/internal/models"
	"casabeleza/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for every authentication failure so the
// API never reveals whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an email that already has an
// account. The message is the one the storefront displays.
var ErrEmailTaken = errors.New("E-mail já cadastrado")

// AuthService handles password hashing and JWT issuance for both consumer
// and admin accounts. Admin tokens are deliberately shorter lived.
type AuthService struct {
	userRepo      repositories.UserRepository
	adminRepo     repositories.AdminRepository
	jwtSecret     []byte
	userTokenTTL  time.Duration
	adminTokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, adminRepo repositories.AdminRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		adminRepo:     adminRepo,
		jwtSecret:     []byte(jwtSecret),
		userTokenTTL:  24 * time.Hour,
		adminTokenTTL: 8 * time.Hour,
	}
}

// HashPassword hashes a plaintext password with bcrypt.
func (s *AuthService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// RegisterUser creates a consumer account and returns a session token.
func (s *AuthService) RegisterUser(user *models.User, password string) (string, error) {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}
	return s.GenerateUserToken(user)
}

// LoginUser authenticates a consumer by email and returns a token.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateUserToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginAdmin authenticates an admin by username and returns a token.
func (s *AuthService) LoginAdmin(username, password string) (string, *models.AdminUser, error) {
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateAdminToken(admin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// GenerateUserToken issues a 24h consumer token.
func (s *AuthService) GenerateUserToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    "user",
		"exp":     now.Add(s.userTokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// GenerateAdminToken issues an 8h admin token.
func (s *AuthService) GenerateAdminToken(admin *models.AdminUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"role":     "admin",
		"exp":      now.Add(s.adminTokenTTL).Unix(),
		"iat":      now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// AdminExists reports whether the admin id carried by a token still maps to
// a live admin_users row.
func (s *AuthService) AdminExists(id uint) bool {
	admin, err := s.adminRepo.GetByID(id)
	return err == nil && admin != nil
}
