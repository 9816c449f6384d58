package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mkandie/acquisitions/internal/domain/user"
	"github.com/mkandie/acquisitions/internal/repo/memory"
	"github.com/mkandie/acquisitions/internal/service"
)

func strptr(s string) *string { return &s }

// seeds two users and returns the services plus the first user's id.
func setupUsers(t *testing.T) (*service.UsersService, *service.AuthService, int) {
	t.Helper()

	repo := memory.NewUsersRepo()
	log := discardLogger()
	authSvc := service.NewAuthService(repo, log)
	usersSvc := service.NewUsersService(repo, log)

	first, err := authSvc.SignUp(context.Background(), user.SignUpRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("seed signup failed: %v", err)
	}

	_, err = authSvc.SignUp(context.Background(), user.SignUpRequest{
		Name: "B", Email: "b@x.com", Password: "secret2",
	})
	if err != nil {
		t.Fatalf("seed signup failed: %v", err)
	}

	return usersSvc, authSvc, first.ID
}

func TestList_ReturnsAllUsers(t *testing.T) {
	svc, _, _ := setupUsers(t)

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d users, want 2", len(all))
	}
	if all[0].ID >= all[1].ID {
		t.Fatalf("users not ordered by id: %v", all)
	}
}

func TestGetByID_AbsentIsNil(t *testing.T) {
	svc, _, _ := setupUsers(t)

	pub, err := svc.GetByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetByID must not error on absence: %v", err)
	}
	if pub != nil {
		t.Fatalf("expected nil for a missing user, got %v", pub)
	}
}

func TestGetByEmail(t *testing.T) {
	svc, _, _ := setupUsers(t)

	pub, err := svc.GetByEmail(context.Background(), "b@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if pub == nil || pub.Name != "B" {
		t.Fatalf("unexpected result: %v", pub)
	}

	missing, err := svc.GetByEmail(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("GetByEmail must not error on absence: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown email, got %v", missing)
	}
}

func TestUpdate_NameOnlyLeavesRestUnchanged(t *testing.T) {
	svc, _, id := setupUsers(t)

	pub, err := svc.Update(context.Background(), id, user.UpdateUserRequest{Name: strptr("Alice")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if pub == nil {
		t.Fatalf("expected an updated user")
	}

	if pub.Name != "Alice" {
		t.Fatalf("got name %q, want Alice", pub.Name)
	}
	if pub.Email != "a@x.com" {
		t.Fatalf("email changed unexpectedly: %q", pub.Email)
	}
	if pub.Role != user.RoleUser {
		t.Fatalf("role changed unexpectedly: %q", pub.Role)
	}
	if !pub.UpdatedAt.After(pub.CreatedAt) && !pub.UpdatedAt.Equal(pub.CreatedAt) {
		t.Fatalf("updatedAt went backwards: %v vs %v", pub.UpdatedAt, pub.CreatedAt)
	}
}

func TestUpdate_EmailTaken(t *testing.T) {
	svc, _, id := setupUsers(t)

	_, err := svc.Update(context.Background(), id, user.UpdateUserRequest{Email: strptr("b@x.com")})
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdate_SameEmailIsNoConflict(t *testing.T) {
	svc, _, id := setupUsers(t)

	pub, err := svc.Update(context.Background(), id, user.UpdateUserRequest{Email: strptr("a@x.com")})
	if err != nil {
		t.Fatalf("updating to own email must not conflict: %v", err)
	}
	if pub == nil || pub.Email != "a@x.com" {
		t.Fatalf("unexpected result: %v", pub)
	}
}

func TestUpdate_AbsentIsNil(t *testing.T) {
	svc, _, _ := setupUsers(t)

	pub, err := svc.Update(context.Background(), 9999, user.UpdateUserRequest{Name: strptr("X")})
	if err != nil {
		t.Fatalf("Update on a missing user must not error: %v", err)
	}
	if pub != nil {
		t.Fatalf("expected nil, got %v", pub)
	}
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	svc, authSvc, id := setupUsers(t)

	_, err := svc.Update(context.Background(), id, user.UpdateUserRequest{Password: strptr("newsecret1")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	pub, err := authSvc.SignIn(context.Background(), "a@x.com", "newsecret1")
	if err != nil || pub == nil {
		t.Fatalf("sign in with new password failed: %v %v", pub, err)
	}

	old, err := authSvc.SignIn(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if old != nil {
		t.Fatalf("old password still accepted")
	}
}

func TestDelete_ExistingThenGone(t *testing.T) {
	svc, _, id := setupUsers(t)

	ok, err := svc.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !ok {
		t.Fatalf("Delete reported false for an existing user")
	}

	pub, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if pub != nil {
		t.Fatalf("deleted user still found: %v", pub)
	}
}

func TestDelete_AbsentIsFalse(t *testing.T) {
	svc, _, _ := setupUsers(t)

	ok, err := svc.Delete(context.Background(), 9999)
	if err != nil {
		t.Fatalf("Delete on a missing user must not error: %v", err)
	}
	if ok {
		t.Fatalf("Delete reported true for a missing user")
	}
}
