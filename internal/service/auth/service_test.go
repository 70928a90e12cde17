package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository/memory"
	"github.com/mindwell-clinic/clinic-api/pkg/auth"
	apperrors "github.com/mindwell-clinic/clinic-api/pkg/errors"
	"github.com/mindwell-clinic/clinic-api/pkg/security"
)

func newTestAuthService(t *testing.T) *Service {
	t.Helper()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	svc := NewService(memory.NewUserRepository(), security.NewBcryptHasher(4), jwtSvc)
	require.NoError(t, svc.SeedAdmin(context.Background(), "admin@example.com", "correct-horse"))
	return svc
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.UserRoleAdmin, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}
