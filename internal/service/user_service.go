package service

import (
	"strings"

	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/repository"
)

// CreateUserInput describes a new staff account.
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

// UpdateUserInput updates an existing account; nil fields stay unchanged.
type UpdateUserInput struct {
	Password *string
	FullName *string
	Role     *string
	Active   *bool
}

// UserService manages staff accounts.
type UserService struct {
	userRepo    repository.UserRepository
	authService *AuthService
}

// NewUserService creates a user service.
func NewUserService(userRepo repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{userRepo: userRepo, authService: authService}
}

// List returns all staff accounts.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.List()
}

// Create registers a staff account.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if !validRole(input.Role) {
		return nil, ErrInvalidCredentials
	}
	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         input.Role,
		Active:       true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to a staff account.
func (s *UserService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := s.authService.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Role != nil {
		if !validRole(*input.Role) {
			return nil, ErrInvalidCredentials
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a staff account.
func (s *UserService) Delete(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}

func validRole(role string) bool {
	switch role {
	case constants.RoleAdmin, constants.RoleCashier, constants.RoleWaiter:
		return true
	}
	return false
}
