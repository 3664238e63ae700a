package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-jobtracker-backend/internal/auth"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	tm, err := auth.NewTokenManager(strings.Repeat("k", 32), "jobtracker-test", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return &AuthService{DB: newTestDB(t), Tokens: tm}
}

func TestAuthService_SignupLoginMe(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	sess, err := svc.Signup(ctx, SignupInput{
		Username: "ada", Email: " Ada@Example.com ", Password: "s3cret-pass", DisplayName: "Ada",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if sess.Token == "" || sess.User == nil || sess.User.Email != "ada@example.com" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.User.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in clear")
	}

	uid, err := svc.Authenticate(sess.Token)
	if err != nil || uid != sess.User.ID {
		t.Fatalf("Authenticate = %q, %v", uid, err)
	}

	for _, login := range []string{"ada", "ADA@example.com"} {
		s, err := svc.Login(ctx, login, "s3cret-pass")
		if err != nil || s.User.ID != sess.User.ID {
			t.Fatalf("Login(%q) = %+v, %v", login, s, err)
		}
	}
	if _, err := svc.Login(ctx, "ada", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, " ", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("blank login: want ErrInvalidCredentials, got %v", err)
	}

	me, err := svc.Me(ctx, sess.User.ID)
	if err != nil || me.Username != "ada" {
		t.Fatalf("Me = %+v, %v", me, err)
	}
	if _, err := svc.Me(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Me(ghost): want ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_SignupValidationAndConflict(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	bad := []SignupInput{
		{Username: "ab", Email: "a@example.com", Password: "longenough"},
		{Username: "has space", Email: "a@example.com", Password: "longenough"},
		{Username: "valid", Email: "not-an-email", Password: "longenough"},
		{Username: "valid", Email: "Name <a@example.com>", Password: "longenough"},
		{Username: "valid", Email: "a@example.com", Password: "short"},
		{Username: "valid", Email: "a@example.com", Password: strings.Repeat("p", 73)},
	}
	for _, in := range bad {
		if _, err := svc.Signup(ctx, in); !errors.Is(err, ErrValidation) {
			t.Fatalf("Signup(%+v): want ErrValidation, got %v", in, err)
		}
	}

	if _, err := svc.Signup(ctx, SignupInput{Username: "grace", Email: "grace@example.com", Password: "longenough"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Signup(ctx, SignupInput{Username: "grace", Email: "other@example.com", Password: "longenough"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate username: want ErrUserExists, got %v", err)
	}
	if _, err := svc.Signup(ctx, SignupInput{Username: "other", Email: "GRACE@example.com", Password: "longenough"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate email: want ErrUserExists, got %v", err)
	}
}
