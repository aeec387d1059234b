package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrSignupConflict          = errors.New("username or email already registered")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrInvalidToken            = errors.New("invalid token")
)

// Claims is the decoded access-token payload.
type Claims struct {
	UserID   string
	Username string
}

type AuthService interface {
	Signup(ctx context.Context, username, email string) (existing bool, err error)
	IssueToken(username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo        repository.UserRepository
	mail            mailer.Mailer
	logger          *slog.Logger
	fromEmail       string
	jwtSecret       string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	mail mailer.Mailer,
	logger *slog.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		mail:            mail,
		logger:          logger,
		fromEmail:       cfg.FromEmail,
		jwtSecret:       cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// Signup registers a username/email pair and emails the confirmation
// code. When the exact pair is already registered it does nothing and
// reports existing=true: the caller echoes the payload back unchanged
// without a second email.
func (s *authService) Signup(ctx context.Context, username, email string) (bool, error) {
	if _, err := s.userRepo.FindByUsernameAndEmail(username, email); err == nil {
		return true, nil
	}

	code := deriveConfirmationCode(username, email)

	user := &models.User{
		Username:         username,
		Email:            email,
		Role:             models.RoleUser,
		ConfirmationCode: code,
	}
	if err := s.userRepo.Create(user); err != nil {
		// username taken with a different email, or vice versa
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, ErrSignupConflict
		}
		return false, err
	}

	subject := "Confirmation code"
	body := fmt.Sprintf("%s - your confirmation code", code)
	if err := s.mail.Send(ctx, subject, body, []string{user.Email}); err != nil {
		// delivery failure is not surfaced to the signup caller
		s.logger.Error("failed to send confirmation email", "username", username, "error", err)
	}

	return false, nil
}

// deriveConfirmationCode computes the two-stage digest: a 6-character
// salt from username+email, then a digest of username+salt.
func deriveConfirmationCode(username, email string) string {
	salt := sha256Hex(username + email)[:6]
	return sha256Hex(username + salt)
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// IssueToken exchanges a confirmation code for a signed access token.
// The refresh token is minted alongside it but discarded; there is no
// refresh endpoint.
func (s *authService) IssueToken(username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if user.ConfirmationCode == "" || user.ConfirmationCode != confirmationCode {
		return "", ErrInvalidConfirmationCode
	}

	accessToken, err := s.generateToken(user, "access", s.accessTokenTTL)
	if err != nil {
		return "", err
	}
	if _, err := s.generateToken(user, "refresh", s.refreshTokenTTL); err != nil {
		return "", err
	}

	return accessToken, nil
}

func (s *authService) generateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
		"type":     tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies an access token string.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if tokenType, _ := mapClaims["type"].(string); tokenType != "access" {
		return nil, ErrInvalidToken
	}

	userID, _ := mapClaims["user_id"].(string)
	username, _ := mapClaims["username"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Username: username}, nil
}
