package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkandie/acquisitions/internal/auth"
	"github.com/mkandie/acquisitions/internal/config"
	"github.com/mkandie/acquisitions/internal/http/handlers"
	"github.com/mkandie/acquisitions/internal/repo/memory"
	"github.com/mkandie/acquisitions/internal/service"
)

func testConfig() config.Config {
	return config.Config{
		Env:       "test",
		JWTSecret: "test-secret-key",
	}
}

// newTestRouter wires the real services over the in-memory repo.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewUsersRepo()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()

	jwtManager := auth.NewManager(cfg.JWTSecret, auth.TokenTTL)
	authHandler := handlers.NewAuthHandler(service.NewAuthService(repo, log), jwtManager, cfg)
	usersHandler := handlers.NewUsersHandler(service.NewUsersService(repo, log))

	r := gin.New()
	r.POST("/signup", authHandler.SignUp)
	r.POST("/signin", authHandler.SignIn)
	r.POST("/signout", authHandler.SignOut)
	r.GET("/users", usersHandler.GetUsers)
	r.GET("/users/:id", usersHandler.GetUser)
	r.PUT("/users/:id", usersHandler.UpdateUser)
	r.DELETE("/users/:id", usersHandler.DeleteUser)

	return r
}

func doRequest(router http.Handler, method, path, body string) (*httptest.ResponseRecorder, *http.Response) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w, w.Result()
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func authCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range res.Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}

	t.Fatalf("auth_token cookie not found in response")

	return nil
}

func signUp(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	w, _ := doRequest(router, http.MethodPost, "/signup", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("signup got status %d, body=%s", w.Code, w.Body.String())
	}

	return w
}
