package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
	"github.com/mindwell-clinic/clinic-api/pkg/auth"
	apperrors "github.com/mindwell-clinic/clinic-api/pkg/errors"
	"github.com/mindwell-clinic/clinic-api/pkg/security"
)

// Service performs the mock credential check: users live in memory, only
// the hash comparison and token issue are real.
type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	jwtSvc auth.JWTService
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, jwtSvc auth.JWTService) *Service {
	return &Service{repo: repo, hasher: hasher, jwtSvc: jwtSvc}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

// SeedAdmin registers the admin credentials from configuration.
func (s *Service) SeedAdmin(ctx context.Context, email, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hash,
		Role:         model.UserRoleAdmin,
	}
	return s.repo.Create(ctx, user)
}
