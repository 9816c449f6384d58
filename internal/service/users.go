package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkandie/acquisitions/internal/domain/user"
	"github.com/mkandie/acquisitions/internal/security"
)

type UsersService struct {
	repo UserRepo
	log  *slog.Logger
}

func NewUsersService(repo UserRepo, log *slog.Logger) *UsersService {
	return &UsersService{repo: repo, log: log}
}

func (s *UsersService) List(ctx context.Context) ([]user.Public, error) {
	all, err := s.repo.List(ctx)

	if err != nil {
		s.log.Error("listing users failed", "err", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	output := make([]user.Public, 0, len(all))

	for _, u := range all {
		output = append(output, u.Public())
	}

	return output, nil
}

// GetByID returns (nil, nil) when no such user exists.
func (s *UsersService) GetByID(ctx context.Context, id int) (*user.Public, error) {
	u, err := s.repo.FindByID(ctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}

		s.log.Error("fetching user failed", "id", id, "err", err)
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	pub := u.Public()

	return &pub, nil
}

func (s *UsersService) GetByEmail(ctx context.Context, email string) (*user.Public, error) {
	u, err := s.repo.FindByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}

		s.log.Error("fetching user failed", "email", email, "err", err)
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	pub := u.Public()

	return &pub, nil
}

// Update applies a sparse patch. It returns (nil, nil) when the user does
// not exist and user.ErrEmailTaken when an email change collides with
// another account.
func (s *UsersService) Update(ctx context.Context, id int, req user.UpdateUserRequest) (*user.Public, error) {
	existing, err := s.repo.FindByID(ctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}

		s.log.Error("update lookup failed", "id", id, "err", err)
		return nil, fmt.Errorf("update user: %w", err)
	}

	if req.Email != nil && *req.Email != existing.Email {
		_, err := s.repo.FindByEmail(ctx, *req.Email)

		if err == nil {
			return nil, user.ErrEmailTaken
		}

		if !errors.Is(err, user.ErrNotFound) {
			s.log.Error("update email check failed", "id", id, "err", err)
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	patch := user.Patch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}

	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password)

		if err != nil {
			s.log.Error("update password hashing failed", "id", id, "err", err)
			return nil, fmt.Errorf("update user: %w", err)
		}

		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// deleted between lookup and update
			return nil, nil
		}

		if errors.Is(err, user.ErrEmailTaken) {
			// unique index caught a concurrent email change
			return nil, user.ErrEmailTaken
		}

		s.log.Error("update failed", "id", id, "err", err)
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("user updated", "id", id)

	pub := updated.Public()

	return &pub, nil
}

// Delete reports false when the user does not exist.
func (s *UsersService) Delete(ctx context.Context, id int) (bool, error) {
	err := s.repo.Delete(ctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return false, nil
		}

		s.log.Error("delete failed", "id", id, "err", err)
		return false, ErrDeleteFailed
	}

	s.log.Info("user deleted", "id", id)

	return true, nil
}
