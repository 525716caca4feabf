package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
)

// Singapore mobile numbers: +65 followed by 8 digits starting 8 or 9.
var sgPhonePattern = regexp.MustCompile(`^\+65[89]\d{7}$`)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	sessionRepo  repository.SessionRepository
	jwtSecret    string
	accessExpiry time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	jwtSecret string,
	accessExpiryMin int,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		sessionRepo:  sessionRepo,
		jwtSecret:    jwtSecret,
		accessExpiry: time.Duration(accessExpiryMin) * time.Minute,
	}
}

// RegisterRequest carries signup credentials.
type RegisterRequest struct {
	Phone    string  `json:"phone" binding:"required,sgphone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	FullName string  `json:"full_name" binding:"required,min=2,max=100"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the authentication result.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Register creates a user with a lazily-created blank profile and opens
// a session.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	if !sgPhonePattern.MatchString(req.Phone) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Auto-create profile for new user
	profile := &domain.Profile{
		UserID:                user.ID,
		FullName:              req.FullName,
		CredibilityScore:      50,
		SkillExchangeDuration: domain.DefaultExchangeDuration,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		// Don't fail registration if profile creation fails; the
		// profile is created lazily on first fetch instead.
		fmt.Printf("Warning: failed to create profile for user %d: %v\n", user.ID, err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: true,
	}, nil
}

// Login verifies credentials and opens a session.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Logout revokes the session backing the token.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	return uc.sessionRepo.DeleteByToken(ctx, uc.hashToken(tokenString))
}

// GetUser loads the user behind a verified token.
func (uc *AuthUseCase) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// createSession creates a new session and returns a JWT token
func (uc *AuthUseCase) createSession(ctx context.Context, userID int, deviceInfo, ipAddress string) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.accessExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		UserID:     userID,
		Token:      uc.hashToken(tokenString),
		DeviceInfo: &deviceInfo,
		IPAddress:  &ipAddress,
		ExpiresAt:  expiresAt,
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken verifies a JWT token against its stored session and
// returns the user id.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	// Revoked sessions fail even when the signature still verifies.
	if _, err := uc.sessionRepo.GetByToken(ctx, uc.hashToken(tokenString)); err != nil {
		return 0, domain.ErrInvalidToken
	}

	return int(userIDFloat), nil
}

func (uc *AuthUseCase) hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
