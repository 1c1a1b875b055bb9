package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"moviepicks/internal/model"
	"moviepicks/internal/repository"
)

// UserService handles signup and login
type UserService struct {
	repo       repository.UserRepository
	bcryptCost int
}

func NewUserService(repo repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = 10
	}
	return &UserService{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account. The password is hashed exactly once,
// here; nothing else in the system ever rewrites password_hashed.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, model.ErrUsernameRequired
	}

	if req.Password == "" {
		return nil, model.ErrPasswordRequired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		PasswordHashed: string(hashedPassword),
	}

	// The unique constraint is the authority on duplicates; a racing signup
	// with the same name loses here with ErrUsernameExists.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			return nil, model.ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with username and password. Unknown username and
// wrong password both come back as ErrInvalidCredentials so the error kind
// never reveals which one it was.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Wrap both so the handler can choose the unknown-username flash
			// while the error kind stays ErrInvalidCredentials.
			return nil, fmt.Errorf("%w: %w", model.ErrInvalidCredentials, model.ErrUserNotFound)
		}
		return nil, model.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
