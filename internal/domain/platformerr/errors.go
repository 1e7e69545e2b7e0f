// Package platformerr defines the closed set of platform-independent error
// kinds raised by the hosting-platform adapter and consumed by the rest of
// the application. Callers never see the platform SDK's native error types;
// translation to one of these kinds happens once, at the adapter boundary.
package platformerr

import (
	"errors"
	"fmt"
)

// Kind classifies a platform error.
type Kind int

const (
	// KindUnknown is the zero value; KindOf returns it for non-platform errors.
	KindUnknown Kind = iota
	// KindNotFound means a referenced entity (user, org, repo, team) does not
	// exist on the platform.
	KindNotFound
	// KindAlreadyExists means creation collided with an existing entity's
	// identifying key (platform validation error).
	KindAlreadyExists
	// KindBadCredentials covers empty tokens, missing token scopes, and
	// identity/membership mismatches.
	KindBadCredentials
	// KindUnexpected is any platform failure outside the anticipated set, or
	// a response violating an expected post-condition.
	KindUnexpected
	// KindInternetUnavailable means a reachability probe failed before any
	// platform call was attempted.
	KindInternetUnavailable
	// KindInvalidURL means a supplied URL is not a plausible endpoint for the
	// configured platform.
	KindInvalidURL
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindBadCredentials:
		return "bad credentials"
	case KindUnexpected:
		return "unexpected platform error"
	case KindInternetUnavailable:
		return "internet connection unavailable"
	case KindInvalidURL:
		return "invalid url"
	default:
		return "unknown"
	}
}

// Error is a tagged platform error. Kind is the taxonomy classification,
// Msg the human-readable diagnostic, and Err the underlying cause (may be
// nil for errors originating in our own post-condition checks).
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a tagged error with a formatted diagnostic.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a tagged error that records err as its cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the taxonomy kind of err, or KindUnknown if err is not a
// platform error. It unwraps through error chains.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is classified as KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAlreadyExists reports whether err is classified as KindAlreadyExists.
func IsAlreadyExists(err error) bool { return KindOf(err) == KindAlreadyExists }

// IsBadCredentials reports whether err is classified as KindBadCredentials.
func IsBadCredentials(err error) bool { return KindOf(err) == KindBadCredentials }

// IsInvalidURL reports whether err is classified as KindInvalidURL.
func IsInvalidURL(err error) bool { return KindOf(err) == KindInvalidURL }
