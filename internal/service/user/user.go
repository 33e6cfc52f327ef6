package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cms-api/internal/domain/models"
	"cms-api/internal/lib/jwt"
	"cms-api/internal/lib/logger/sl"
	"cms-api/internal/service"
	"cms-api/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = fmt.Errorf("user %w", service.ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Storage interface {
	SaveUser(ctx context.Context, name, email string, passHash []byte) (int64, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
}

type Service struct {
	log      *slog.Logger
	storage  Storage
	secret   string
	tokenTTL time.Duration
}

func New(log *slog.Logger, storage Storage, secret string, ttl time.Duration) *Service {
	return &Service{
		log:      log,
		storage:  storage,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (int64, error) {
	const op = "service.user.Register"

	log := s.log.With(slog.String("op", op))

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := service.RequireText("name", name); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !strings.Contains(email, "@") {
		return 0, fmt.Errorf("%s: %w", op, &service.ValidationError{Field: "email", Reason: "must be an email address"})
	}
	if err := service.RequireText("password", password); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// Hashing password
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate hash from password", sl.Error(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.storage.SaveUser(ctx, name, email, passHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Info("email already registered")
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to register user", sl.Error(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("id", id))

	return id, nil
}

// Login checks the credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "service.user.Login"

	log := s.log.With(slog.String("op", op))

	user, err := s.storage.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("unknown email")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Error(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("incorrect password", slog.Int64("user_id", user.ID))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(user, s.tokenTTL, s.secret)
	if err != nil {
		log.Error("failed to create new token", sl.Error(err))
		return "", fmt.Errorf("%s: failed to create new token: %w", op, err)
	}

	return token, nil
}

func (s *Service) UserByID(ctx context.Context, id int64) (models.User, error) {
	const op = "service.user.UserByID"

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		s.log.Error("failed to get user", slog.String("op", op), sl.Error(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
