package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/auth"
	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
)

const (
	minPasswordRunes = 8
	// bcrypt ignores input past 72 bytes and newer versions reject it.
	maxPasswordBytes = 72
)

var usernameRE = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,80}$`)

// SignupInput is the payload for registering an account.
type SignupInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// Session is an issued access token together with its owner.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// AuthService registers and authenticates users.
type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

// Signup validates in, stores the user with a bcrypt hash and returns a
// session for it. A taken username or email yields ErrUserExists.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	username := strings.TrimSpace(in.Username)
	if !usernameRE.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-80 characters of letters, digits, '_', '.' or '-'", ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	if utf8.RuneCountInString(in.Password) < minPasswordRunes {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordRunes)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordBytes)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Username:     username,
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		PasswordHash: hash,
	}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("user_id", u.ID).Msg("user signed up")
	return s.session(u)
}

// Login authenticates by username or email. Unknown logins and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, login, password string) (*Session, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := repo.GetUserByLogin(ctx, s.DB, login)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return s.session(u)
}

// Me returns the user identified by userID.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Authenticate validates a bearer token and returns its user id.
func (s *AuthService) Authenticate(token string) (string, error) {
	return s.Tokens.Validate(token)
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	tok, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, ExpiresAt: exp, User: u}, nil
}
