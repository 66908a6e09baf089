package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// dummyPassword is hashed once and compared against when a login names an
// unknown user, so both failure paths cost one bcrypt comparison.
const dummyPassword = "timing-equalizer"

// fallbackDummyHash is a well-formed cost-10 bcrypt digest used when
// dummyPassword cannot be hashed.
const fallbackDummyHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"

// AccountService creates accounts and exchanges credentials for tokens.
type AccountService interface {
	// CreateAccount hashes password and stores a new user.
	// Returns store.ErrUsernameExists if the username is taken.
	CreateAccount(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies credentials and issues a bearer token.
	// Returns ErrInvalidCredentials for an unknown user or wrong password.
	Login(ctx context.Context, username, password string) (auth.Token, error)
}

type accountService struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	tokens   auth.TokenCodec
	logger   *slog.Logger
	timeFunc func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates an AccountService.
func NewAccountService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.TokenCodec,
	logger *slog.Logger,
) AccountService {
	return &accountService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.With("component", "account_service"),
		timeFunc: time.Now,
	}
}

// CreateAccount implements AccountService.CreateAccount
func (s *accountService) CreateAccount(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password, s.timeFunc())
	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if err := user.SetHashedPassword(digest); err != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrHashingFailed, err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to create user with existing username",
				slog.String("username", username))
		} else {
			s.logger.Error("failed to save user", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// Login implements AccountService.Login
func (s *accountService) Login(ctx context.Context, username, password string) (auth.Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		s.hasher.Verify(password, s.dummyDigest())
		s.logger.Debug("login failed: unknown user", slog.String("username", username))
		return auth.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("failed to load user for login", slog.String("error", err.Error()))
		return auth.Token{}, fmt.Errorf("failed to log in: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.logger.Debug("login failed: wrong password", slog.Int64("user_id", user.ID))
		return auth.Token{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return auth.Token{}, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Debug("login succeeded", slog.Int64("user_id", user.ID))
	return token, nil
}

func (s *accountService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare dummy hash", slog.String("error", err.Error()))
			s.dummyHash = fallbackDummyHash
			return
		}
		s.dummyHash = digest
	})
	return s.dummyHash
}
