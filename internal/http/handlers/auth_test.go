package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mkandie/acquisitions/internal/auth"
)

type userEnvelope struct {
	Data    map[string]interface{} `json:"data"`
	Message string                 `json:"message"`
}

func TestSignUp_CreatesUserAndSetsSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	w, res := doRequest(router, http.MethodPost, "/signup",
		`{"name":"A","email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp userEnvelope
	mustReadJSON(t, w, &resp)

	if resp.Message != "User signed up successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.Data["email"] != "a@x.com" {
		t.Fatalf("unexpected email: %v", resp.Data["email"])
	}
	if resp.Data["role"] != "user" {
		t.Fatalf("role should default to user, got %v", resp.Data["role"])
	}
	if _, ok := resp.Data["password"]; ok {
		t.Fatalf("password leaked into response: %s", w.Body.String())
	}
	if _, ok := resp.Data["passwordHash"]; ok {
		t.Fatalf("password hash leaked into response: %s", w.Body.String())
	}

	cookie := authCookie(t, res)

	if cookie.Value == "" {
		t.Fatalf("expected a token in the auth cookie")
	}
	if !cookie.HttpOnly {
		t.Fatalf("auth cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("auth cookie must be SameSite=Lax")
	}

	// the cookie carries a verifiable token for the created user
	claims, err := auth.NewManager("test-secret-key", auth.TokenTTL).Verify(cookie.Value)
	if err != nil {
		t.Fatalf("cookie token failed verification: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("token email mismatch: %q", claims.Email)
	}
}

func TestSignUp_DuplicateEmailFailsUniformly(t *testing.T) {
	router := newTestRouter(t)

	signUp(t, router, `{"name":"A","email":"a@x.com","password":"secret1"}`)

	w, _ := doRequest(router, http.MethodPost, "/signup",
		`{"name":"A2","email":"a@x.com","password":"secret2"}`)

	if w.Code == http.StatusCreated {
		t.Fatalf("duplicate signup must not succeed, body=%s", w.Body.String())
	}
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "User creation failed") {
		t.Fatalf("expected the collapsed creation error, body=%s", w.Body.String())
	}
}

func TestSignUp_InvalidBody(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(router, http.MethodPost, "/signup",
		`{"name":"A","email":"not-an-email","password":"x"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Invalid signup data") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSignIn_HappyPath(t *testing.T) {
	router := newTestRouter(t)

	signUp(t, router, `{"name":"A","email":"a@x.com","password":"secret1"}`)

	w, res := doRequest(router, http.MethodPost, "/signin",
		`{"email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp userEnvelope
	mustReadJSON(t, w, &resp)

	if resp.Message != "User signed in successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}

	if authCookie(t, res).Value == "" {
		t.Fatalf("expected a session cookie on signin")
	}
}

func TestSignIn_BadCredentialsIndistinguishable(t *testing.T) {
	router := newTestRouter(t)

	signUp(t, router, `{"name":"A","email":"a@x.com","password":"secret1"}`)

	cases := map[string]string{
		"wrong password": `{"email":"a@x.com","password":"wrong-pass"}`,
		"unknown email":  `{"email":"nobody@x.com","password":"secret1"}`,
	}

	var bodies []string

	for name, body := range cases {
		w, _ := doRequest(router, http.MethodPost, "/signin", body)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: got status %d, want %d", name, w.Code, http.StatusUnauthorized)
		}
		if !strings.Contains(w.Body.String(), "Invalid email or password") {
			t.Fatalf("%s: unexpected body %s", name, w.Body.String())
		}

		bodies = append(bodies, w.Body.String())
	}

	if bodies[0] != bodies[1] {
		t.Fatalf("failure responses must be identical: %q vs %q", bodies[0], bodies[1])
	}
}

func TestSignOut_ClearsCookie(t *testing.T) {
	router := newTestRouter(t)

	w, res := doRequest(router, http.MethodPost, "/signout", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "User signed out successfully") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	cookie := authCookie(t, res)

	if cookie.Value != "" {
		t.Fatalf("cleared cookie must be empty, got %q", cookie.Value)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0") {
		t.Fatalf("cleared cookie must carry Max-Age=0: %q", w.Header().Get("Set-Cookie"))
	}
}
