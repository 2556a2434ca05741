package service

import (
	"context"
	"errors"

	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/repository"
	"stock-portfolio-service/internal/entity"
	"stock-portfolio-service/pkg/logger"

	"gorm.io/gorm"
)

// UserService defines the interface for account management.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetUser(ctx context.Context, id uint) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, logger *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

type userService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	logger   *logger.Logger
}

// Register hashes the password before the row is written.
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Password: hashed,
		Email:    req.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		s.logger.ErrorContext(ctx, "Failed to create user", logger.ErrorField(err), logger.StringField("username", req.Username))
		return nil, ErrCreateUser
	}

	s.logger.InfoContext(ctx, "User registered", logger.Field("user_id", user.ID))
	return mapToUserResponse(user), nil
}

// Login checks the credentials. Unknown users and wrong passwords are indistinguishable.
func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return &dto.LoginResponse{
		Message:  "Login successful",
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return mapToUserResponse(user), nil
}

// UpdateUser applies the non-empty fields; a new password is rehashed.
func (s *userService) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var passwordHash *string
	if password := nonEmpty(req.Password); password != nil {
		hashed, err := s.hasher.Hash(*password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hashed
	}

	user, err := s.userRepo.Update(ctx, id, nonEmpty(req.Username), passwordHash, nonEmpty(req.Email))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrDuplicateUsername
		}
		s.logger.ErrorContext(ctx, "Failed to update user", logger.ErrorField(err), logger.Field("user_id", id))
		return nil, err
	}

	s.logger.InfoContext(ctx, "User updated", logger.Field("user_id", id))
	return mapToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to delete user", logger.ErrorField(err), logger.Field("user_id", id))
		return err
	}
	s.logger.InfoContext(ctx, "User deleted", logger.Field("user_id", id))
	return nil
}

func mapToUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
