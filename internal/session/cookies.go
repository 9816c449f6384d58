// Package session owns the cookie attribute policy for the auth token so
// the set path (signup/signin) and the clear path (signout) cannot drift.
package session

import (
	"net/http"
	"time"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "auth_token"

type Options struct {
	Path     string
	MaxAge   time.Duration
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
}

// Defaults returns the baseline cookie policy. The secure flag is only
// set in production-like environments; callers override individual
// fields before passing the options on.
func Defaults(env string) Options {
	return Options{
		Path:     "/",
		MaxAge:   24 * time.Hour,
		HTTPOnly: true,
		Secure:   env == "prod",
		SameSite: http.SameSiteLaxMode,
	}
}

// Set writes name=value with the merged attribute flags. Boolean flags
// that are false are omitted from the header entirely.
func Set(w http.ResponseWriter, name, value string, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		MaxAge:   int(opts.MaxAge / time.Second),
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// Clear expires the named cookie. The value is forced empty and Max-Age
// is forced to zero regardless of what the caller put in opts.
func Clear(w http.ResponseWriter, name string, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1, // serialized as Max-Age=0
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// Get reads a cookie value from the request. A missing cookie is not an
// error; it reports false.
func Get(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)

	if err != nil || c == nil {
		return "", false
	}

	return c.Value, true
}
