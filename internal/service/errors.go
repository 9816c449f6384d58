package service

import "errors"

var (
	// ErrUserCreationFailed is the single outward signup error. Duplicate
	// email, hashing failure and insert failure all collapse into it; the
	// cause is only logged server-side.
	ErrUserCreationFailed = errors.New("user creation failed")

	// ErrSignInFailed covers unexpected store or hash failures during
	// sign-in. Bad credentials are not an error; they yield a nil user.
	ErrSignInFailed = errors.New("sign in failed")

	ErrDeleteFailed = errors.New("user deletion failed")
)
