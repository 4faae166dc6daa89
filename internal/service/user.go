package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/repository"
)

// WelcomeNotifier queues the welcome e-mail of a new account.
type WelcomeNotifier interface {
	EnqueueWelcomeEmail(ctx context.Context, to, username string) error
}

type UserService struct {
	users   repository.UserStore
	welcome WelcomeNotifier
	logger  *zerolog.Logger
}

// NewUserService builds the account service. welcome may be nil, in which
// case no e-mail is queued.
func NewUserService(users repository.UserStore, welcome WelcomeNotifier, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, welcome: welcome, logger: logger}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates an account. A duplicate e-mail is a conflict. A failure
// to queue the welcome e-mail is logged and does not fail registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Username == "":
		return 0, errs.InvalidField("username", "is required")
	case in.Email == "":
		return 0, errs.InvalidField("email", "is required")
	case in.Password == "":
		return 0, errs.InvalidField("password", "is required")
	}

	// TODO: hash passwords (bcrypt) before storing and compare hashes in Login.
	userID, err := s.users.CreateUser(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return 0, err
	}

	if s.welcome != nil {
		if err := s.welcome.EnqueueWelcomeEmail(ctx, in.Email, in.Username); err != nil {
			s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to enqueue welcome email")
		}
	}

	s.logger.Info().Int64("user_id", userID).Msg("user registered")
	return userID, nil
}

// Login compares the stored password with the given one. Unknown e-mail
// and wrong password give the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return model.User{}, errInvalidCredentials()
		}
		return model.User{}, err
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return model.User{}, errInvalidCredentials()
	}

	return user, nil
}

func errInvalidCredentials() error {
	return errs.NewUnauthorizedError("Invalid email or password", true)
}
