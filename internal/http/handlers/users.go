package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkandie/acquisitions/internal/config"
	"github.com/mkandie/acquisitions/internal/domain/user"
)

type UserManager interface {
	List(ctx context.Context) ([]user.Public, error)
	GetByID(ctx context.Context, id int) (*user.Public, error)
	Update(ctx context.Context, id int, req user.UpdateUserRequest) (*user.Public, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type UsersHandler struct {
	svc UserManager
}

func NewUsersHandler(svc UserManager) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// userID parses the :id route param. A non-integer id is a 400; the
// response is written here and ok reports false.
func userID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))

	if err != nil {
		RespondBadRequest(ctx, "Invalid user ID", nil)
		return 0, false
	}

	return id, true
}

func (h *UsersHandler) GetUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	all, err := h.svc.List(cctx)

	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	RespondData(ctx, http.StatusOK, all, "Users fetched successfully")
}

func (h *UsersHandler) GetUser(ctx *gin.Context) {
	id, ok := userID(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	pub, err := h.svc.GetByID(cctx, id)

	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	if pub == nil {
		RespondNotFound(ctx, "User not found")
		return
	}

	RespondData(ctx, http.StatusOK, pub, "User fetched successfully")
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := userID(ctx)

	if !ok {
		return
	}

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req, "Invalid update data") {
		return
	}

	if req.Empty() {
		RespondBadRequest(ctx, "Invalid update data", gin.H{
			"fields": []FieldError{
				{Field: "body", Rule: "required", Message: "at least one field must be provided"},
			},
		})
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	pub, err := h.svc.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "Email already in use")
			return
		}

		RespondServiceError(ctx, err)
		return
	}

	if pub == nil {
		RespondNotFound(ctx, "User not found")
		return
	}

	RespondData(ctx, http.StatusOK, pub, "User updated successfully")
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, ok := userID(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	deleted, err := h.svc.Delete(cctx, id)

	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	if !deleted {
		RespondNotFound(ctx, "User not found")
		return
	}

	RespondMessage(ctx, http.StatusOK, "User deleted successfully")
}
