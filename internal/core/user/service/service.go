package userapp

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"blogify/internal/core/apperror"
	"blogify/internal/core/ids"
	userEntity "blogify/internal/core/user"
	userPort "blogify/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
)

// UserService handles accounts and the bearer tokens issued for them.
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	jwtKey         []byte
	issuer         string
	tokenTTL       time.Duration
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, issuer string, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		jwtKey:         jwtKey,
		issuer:         issuer,
		tokenTTL:       tokenTTL,
		now:            time.Now,
	}
}

// RegisterUser creates an account with a bcrypt-hashed password.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, apperror.Validation("Username, email and password are required")
	}
	if utf8.RuneCountInString(username) > userEntity.MaxUsernameLength {
		return nil, apperror.Validation("Username must be at most %d characters", userEntity.MaxUsernameLength)
	}
	if utf8.RuneCountInString(email) > userEntity.MaxEmailLength {
		return nil, apperror.Validation("Email must be at most %d characters", userEntity.MaxEmailLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("Invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.Validation("Password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return nil, apperror.Validation("Password must be at most %d bytes", maxPasswordBytes)
	}

	existing, err := s.UserRepository.FindByUsernameOrEmail(ctx, username, email)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Username or email already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       ids.New(),
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("user registered", zap.String("userID", u.ID.String()), zap.String("username", u.Username))
	return userPort.NewUserDTO(u), nil
}

// LoginUser verifies credentials and issues a signed token.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.Validation("Email and password are required")
	}

	u, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Unauthenticated("Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.Logger.Debug("invalid password", zap.String("userID", u.ID.String()))
		return nil, apperror.Unauthenticated("Invalid credentials")
	}

	expiresAt := s.now().Add(s.tokenTTL)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      userPort.NewUserDTO(u),
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*userPort.UserDTO, error) {
	uid, err := ids.Parse(userID, "user ID")
	if err != nil {
		return nil, err
	}
	u, err := s.UserRepository.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return userPort.NewUserDTO(u), nil
}

// VerifyToken resolves a bearer token to the user id it was issued for.
func (s *UserService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", apperror.Unauthenticated("Token expired")
		}
		return "", apperror.Unauthenticated("Invalid token")
	}
	if claims.Issuer != s.issuer {
		return "", apperror.Unauthenticated("Invalid token")
	}
	if _, err := ids.Parse(claims.Subject, "user ID"); err != nil {
		return "", apperror.Unauthenticated("Invalid token")
	}
	return claims.Subject, nil
}

func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		Issuer:    s.issuer,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}
