package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkandie/acquisitions/internal/auth"
	"github.com/mkandie/acquisitions/internal/config"
	"github.com/mkandie/acquisitions/internal/domain/user"
	"github.com/mkandie/acquisitions/internal/session"
)

// Authenticator is the slice of the auth service these handlers need;
// kept small so tests can fake it easily.
type Authenticator interface {
	SignUp(ctx context.Context, req user.SignUpRequest) (*user.Public, error)
	SignIn(ctx context.Context, email, password string) (*user.Public, error)
}

type AuthHandler struct {
	svc Authenticator
	jwt *auth.Manager
	cfg config.Config
}

func NewAuthHandler(svc Authenticator, jwtManager *auth.Manager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		jwt: jwtManager,
		cfg: cfg,
	}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req, "Invalid signup data") {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	pub, err := h.svc.SignUp(cctx, req)

	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	if !h.issueSession(ctx, pub) {
		return
	}

	RespondData(ctx, http.StatusCreated, pub, "User signed up successfully")
}

func (h *AuthHandler) SignIn(ctx *gin.Context) {
	var req user.SignInRequest

	if !BindJSON(ctx, &req, "Invalid signin data") {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	pub, err := h.svc.SignIn(cctx, req.Email, req.Password)

	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	if pub == nil {
		RespondUnauthorized(ctx, "Invalid email or password")
		return
	}

	if !h.issueSession(ctx, pub) {
		return
	}

	RespondData(ctx, http.StatusOK, pub, "User signed in successfully")
}

func (h *AuthHandler) SignOut(ctx *gin.Context) {
	session.Clear(ctx.Writer, session.CookieName, session.Defaults(h.cfg.Env))

	RespondMessage(ctx, http.StatusOK, "User signed out successfully")
}

// issueSession signs a token for the user and sets the session cookie.
// On failure it writes the error response and reports false.
func (h *AuthHandler) issueSession(ctx *gin.Context, pub *user.Public) bool {
	token, err := h.jwt.Issue(pub.ID, pub.Email, pub.Role)

	if err != nil {
		RespondInternal(ctx, "Internal server error")
		return false
	}

	session.Set(ctx.Writer, session.CookieName, token, session.Defaults(h.cfg.Env))

	return true
}
