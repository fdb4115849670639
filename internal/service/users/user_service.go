package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidInput = errors.New("invalid user input")

var validate = validator.New()

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, bool, error)
	GetByID(ctx context.Context, id int64) (*domain.User, bool, error)
}

type RegisterInput struct {
	Name           string `validate:"required"`
	Email          string `validate:"required,email"`
	Password       string `validate:"required"`
	DateOfBirth    time.Time
	PassportNumber string
}

type UserService struct {
	users repository.UserRepository
	cost  int
	log   logger.Logger
	now   func() time.Time
}

type UserServiceOption func(*UserService)

// WithBcryptCost overrides bcrypt.DefaultCost. Values outside bcrypt's range are ignored.
func WithBcryptCost(cost int) UserServiceOption {
	return func(s *UserService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

func WithLogger(log logger.Logger) UserServiceOption {
	return func(s *UserService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) UserServiceOption {
	return func(s *UserService) {
		s.now = now
	}
}

func NewUserService(users repository.UserRepository, opts ...UserServiceOption) *UserService {
	service := &UserService{
		users: users,
		cost:  bcrypt.DefaultCost,
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Register stores a new user with a hashed password. Email is the login key
// and must be unique regardless of case.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   hash,
		DateOfBirth:    input.DateOfBirth,
		PassportNumber: strings.TrimSpace(input.PassportNumber),
		CreatedAt:      s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", logger.F("user_id", user.ID))
	return user, nil
}

// Login returns the user when the credentials match. Unknown emails and wrong
// passwords are both reported as found=false.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, bool, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if err := CheckPassword(password, user.PasswordHash); err != nil {
		s.log.Debug("login rejected", logger.F("user_id", user.ID))
		return nil, false, nil
	}
	return user, true, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, bool, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

func validateRegistration(input RegisterInput) error {
	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s fails %q", ErrInvalidInput, strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// bcrypt rejects longer input
	if len(input.Password) > 72 {
		return fmt.Errorf("%w: password must be at most 72 bytes", ErrInvalidInput)
	}
	return nil
}

var _ UserUseCase = (*UserService)(nil)
