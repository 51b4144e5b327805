package domain

import "errors"

var (
	ErrTokenInvalid     = errors.New("authentication token is invalid")
	ErrTokenExpired     = errors.New("authentication token has expired")
	ErrForbidden        = errors.New("caller does not have permission")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrStoreUnavailable = errors.New("counter store unavailable")
)

func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenExpired)
}

func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}
