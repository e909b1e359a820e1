package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/example/luxe/internal/models"
	"github.com/example/luxe/internal/repositories"
	"github.com/example/luxe/internal/utils"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72

	notifyTimeout = 10 * time.Second
)

// UserStore is the persistence AuthService needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	IncrementLoginCount(ctx context.Context, id uuid.UUID) (int, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// Notifier receives account security events. Delivery failures never fail
// the operation that triggered them.
type Notifier interface {
	NotifyRegistration(ctx context.Context, user *models.User) error
	NotifyPasswordReset(ctx context.Context, email string) error
}

// AuthResult is an issued token together with the user it was issued for.
type AuthResult struct {
	Token string
	User  *models.User
}

// RegisterInput carries the fields of a new customer account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// RecoveryInput is a knowledge-based password reset challenge.
type RecoveryInput struct {
	Email           string
	Phone           string
	FirstLetter     string
	NewPassword     string
	ConfirmPassword string
}

// AdminInput describes the bootstrap administrator.
type AdminInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// AuthService handles registration, login, password recovery and admin
// bootstrap.
type AuthService struct {
	users    UserStore
	tokens   TokenIssuer
	notifier Notifier
	log      *slog.Logger

	dummyOnce sync.Once
	dummyHash string

	pending sync.WaitGroup
}

// NewAuthService creates a new AuthService. notifier may be nil.
func NewAuthService(users UserStore, tokens TokenIssuer, notifier Notifier, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
}

// Register creates a customer account and issues its first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Name) == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}
	if len(in.Password) > maxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	user.PasswordHash = ""
	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()), slog.String("email", user.Email))
	notified := *user
	s.notify(ctx, "registration", func(ctx context.Context, n Notifier) error { return n.NotifyRegistration(ctx, &notified) })

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the credentials, increments the login counter and issues a
// token. Unknown emails and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.CheckPassword(s.unknownUserHash(), password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := utils.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		s.log.ErrorContext(ctx, "stored password hash unreadable", slog.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	count, err := s.users.IncrementLoginCount(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("increment login count: %w", err)
	}
	user.LoginCount = count
	user.PasswordHash = ""

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// RecoverPassword resets the password of the account matching the challenge.
// Checks run in a fixed order and the first failure is returned. Unknown
// email, wrong phone and wrong initial all yield ErrInvalidChallenge. No
// token is issued; the user logs in afterwards.
func (s *AuthService) RecoverPassword(ctx context.Context, in RecoveryInput) error {
	if in.NewPassword != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(in.NewPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	if len(in.NewPassword) > maxPasswordLength {
		return ErrPasswordTooLong
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.log.WarnContext(ctx, "password recovery rejected", slog.String("email", in.Email))
			return ErrInvalidChallenge
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !phoneMatches(user.Phone, in.Phone) || !initialMatches(user.Name, in.FirstLetter) {
		s.log.WarnContext(ctx, "password recovery rejected", slog.String("email", in.Email))
		return ErrInvalidChallenge
	}

	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.InfoContext(ctx, "password reset successful", slog.String("email", user.Email))
	email := user.Email
	s.notify(ctx, "password reset", func(ctx context.Context, n Notifier) error { return n.NotifyPasswordReset(ctx, email) })
	return nil
}

// EnsureAdmin creates the administrator account unless its email is already
// registered. It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, in AdminInput) (bool, error) {
	if in.Email == "" || in.Password == "" {
		return false, ErrInvalidInput
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return false, fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         models.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrUserExists) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	s.log.InfoContext(ctx, "admin user created", slog.String("email", admin.Email))
	return true, nil
}

// notify delivers in the background so a slow notifier never holds up the
// request. The send keeps request values but not its cancellation.
func (s *AuthService) notify(ctx context.Context, event string, send func(context.Context, Notifier) error) {
	if s.notifier == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := send(ctx, s.notifier); err != nil {
			s.log.WarnContext(ctx, "security notification failed", slog.String("event", event), slog.String("error", err.Error()))
		}
	}()
}

// Wait blocks until background notifications have finished.
func (s *AuthService) Wait() {
	s.pending.Wait()
}

// unknownUserHash is compared against when the email is unknown so that
// login takes the same time either way.
func (s *AuthService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := utils.HashPassword(uuid.NewString())
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func phoneMatches(stored, claimed string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(claimed)) == 1
}

func initialMatches(name, claimed string) bool {
	first, size := utf8.DecodeRuneInString(name)
	if size == 0 || first == utf8.RuneError {
		return false
	}
	return strings.EqualFold(string(first), claimed)
}
