package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a token is missing, malformed or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the session lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// UserRepository is the account storage used by the service.
type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (string, error)
}

// Session is the identity carried by a verified token.
type Session struct {
	UserID primitive.ObjectID
	Role   models.Role
}

// IsAdmin reports whether the session may use admin operations.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// RequireAdmin returns ErrForbidden unless the session is an admin.
func (s Session) RequireAdmin() error {
	if !s.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type tokenClaims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.StandardClaims
}

// Service issues and verifies session tokens.
type Service struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(users UserRepository, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Login checks the password and issues a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.users.FindUserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("username", username))
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

func (s *Service) issue(user models.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses a bearer token into a Session.
func (s *Service) VerifyToken(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrUnauthorized
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Session{}, ErrUnauthorized
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil || !claims.Role.Valid() {
		return Session{}, ErrUnauthorized
	}

	return Session{UserID: id, Role: claims.Role}, nil
}

// HashPassword returns the bcrypt hash stored for a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ProvisionUser creates an account unless the username is taken. It reports
// whether a new account was created; existing accounts are left untouched.
func (s *Service) ProvisionUser(ctx context.Context, username, password string, role models.Role) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}
	if !role.Valid() {
		return false, fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}

	_, err := s.users.FindUserByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return false, fmt.Errorf("load user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	id, err := s.users.CreateUser(ctx, models.User{Username: username, PasswordHash: hash, Role: role})
	if errors.Is(err, models.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user provisioned", zap.String("id", id), zap.String("username", username), zap.String("role", string(role)))
	return true, nil
}
