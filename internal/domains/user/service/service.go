package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"guestdex-backend/internal/domains/user/model"
	"guestdex-backend/internal/domains/user/repository"
	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/pkg/jwt"
	"guestdex-backend/pkg/logger"
)

const bcryptCost = 12

// Service handles login and admin account management.
type Service interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	ListUsers(ctx context.Context, ident auth.Identity) ([]model.User, error)
	CreateUser(ctx context.Context, ident auth.Identity, req model.CreateUserRequest) (*model.User, error)
	DeactivateUser(ctx context.Context, ident auth.Identity, id int64) error
	UpdatePassword(ctx context.Context, ident auth.Identity, id int64, req model.PasswordUpdateRequest) error
}

type userService struct {
	repo       repository.Repository
	jwtManager *jwt.Manager
}

func NewUserService(repo repository.Repository, jwtManager *jwt.Manager) Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// Login verifies the credentials and issues a session token. Unknown
// user name and wrong password both return ErrInvalidCredentials.
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	u, err := s.repo.FindByUserName(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if u.Status != model.StatusActive {
		return nil, model.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(u.ID, u.UserName, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("user logged in", map[string]interface{}{
		"user_id": u.ID,
		"role":    u.Role,
	})
	u.PasswordHash = ""
	return &model.LoginResponse{Token: token, User: *u}, nil
}

func (s *userService) ListUsers(ctx context.Context, ident auth.Identity) ([]model.User, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}
	return s.repo.List(ctx)
}

// CreateUser creates a new active account. If the user name belongs to
// a deactivated account, that account is reactivated with the new
// password and role instead.
func (s *userService) CreateUser(ctx context.Context, ident auth.Identity, req model.CreateUserRequest) (*model.User, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := s.repo.FindByUserName(ctx, req.UserName)
	if err == nil {
		if existing.Status == model.StatusActive {
			return nil, model.ErrUserAlreadyExists
		}
		if err := s.repo.Reactivate(ctx, existing.ID, string(hash), req.Role, ident.UserID); err != nil {
			return nil, err
		}
		logger.Info("user reactivated", map[string]interface{}{
			"user_id":  existing.ID,
			"admin_id": ident.UserID,
		})
		return s.repo.GetByID(ctx, existing.ID)
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	u := &model.User{
		UserName:     req.UserName,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		ModifiedBy:   ident.UserID,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user created", map[string]interface{}{
		"user_id":  u.ID,
		"role":     u.Role,
		"admin_id": ident.UserID,
	})
	return u, nil
}

func (s *userService) DeactivateUser(ctx context.Context, ident auth.Identity, id int64) error {
	if !ident.IsAdmin() {
		return model.ErrForbidden
	}
	if err := s.repo.Deactivate(ctx, id, ident.UserID); err != nil {
		return err
	}
	logger.Info("user deactivated", map[string]interface{}{
		"user_id":  id,
		"admin_id": ident.UserID,
	})
	return nil
}

func (s *userService) UpdatePassword(ctx context.Context, ident auth.Identity, id int64, req model.PasswordUpdateRequest) error {
	if !ident.IsAdmin() {
		return model.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash), ident.UserID)
}
