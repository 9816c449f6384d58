package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mkandie/acquisitions/internal/domain/user"
	"github.com/mkandie/acquisitions/internal/security"
)

type AuthService struct {
	repo UserRepo
	log  *slog.Logger
}

func NewAuthService(repo UserRepo, log *slog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// SignUp creates a new user with a hashed password and returns its
// public projection. Every failure mode surfaces as
// ErrUserCreationFailed; callers cannot tell a duplicate email from a
// hashing or store failure.
func (s *AuthService) SignUp(ctx context.Context, req user.SignUpRequest) (*user.Public, error) {
	_, err := s.repo.FindByEmail(ctx, req.Email)

	if err == nil {
		s.log.Warn("signup rejected, user already exists", "email", req.Email)
		return nil, ErrUserCreationFailed
	}

	if !errors.Is(err, user.ErrNotFound) {
		s.log.Error("signup email lookup failed", "email", req.Email, "err", err)
		return nil, ErrUserCreationFailed
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		s.log.Error("signup password hashing failed", "err", err)
		return nil, ErrUserCreationFailed
	}

	role := req.Role

	if role == "" {
		role = user.RoleUser
	}

	created, err := s.repo.Insert(ctx, user.NewUser{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
	})

	if err != nil {
		// covers the unique-index race between concurrent signups too
		s.log.Error("signup insert failed", "email", req.Email, "err", err)
		return nil, ErrUserCreationFailed
	}

	s.log.Info("user created", "id", created.ID, "email", created.Email, "role", created.Role)

	pub := created.Public()

	return &pub, nil
}

// SignIn verifies credentials and returns the public projection. An
// unknown email and a wrong password are indistinguishable: both yield
// (nil, nil), so callers cannot enumerate accounts.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*user.Public, error) {
	found, err := s.repo.FindByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}

		s.log.Error("signin email lookup failed", "email", email, "err", err)
		return nil, ErrSignInFailed
	}

	ok, err := security.CheckPassword(found.PasswordHash, password)

	if err != nil {
		s.log.Error("signin password comparison failed", "email", email, "err", err)
		return nil, ErrSignInFailed
	}

	if !ok {
		return nil, nil
	}

	s.log.Info("user signed in", "id", found.ID, "email", found.Email)

	pub := found.Public()

	return &pub, nil
}
