package sssecrets

import (
	"errors"
	"net/http"
	"strings"
)

// TokenExtractor is a function that takes a request as input and returns
// either a secret or an error. An error should only be returned if an attempt
// to specify a secret was found, but the information was somehow incorrectly
// formed. In the case where a secret is simply not present, this should not
// be treated as an error. An empty string should be returned in that case.
type TokenExtractor func(r *http.Request) (string, error)

// ErrInvalidAuthHeader is returned when the Authorization header is present but malformed.
var ErrInvalidAuthHeader = errors.New("Authorization header format must be Bearer {token} or token {token}")

// AuthHeaderTokenExtractor is a TokenExtractor that takes a request
// and extracts the secret from the Authorization header. Both the
// "Bearer" and "token" schemes are accepted.
func AuthHeaderTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", nil // No error, just no secret.
	}

	authHeaderParts := strings.Fields(authHeader)
	if len(authHeaderParts) != 2 {
		return "", ErrInvalidAuthHeader
	}

	switch strings.ToLower(authHeaderParts[0]) {
	case "bearer", "token":
		return authHeaderParts[1], nil
	default:
		return "", ErrInvalidAuthHeader
	}
}

// HeaderTokenExtractor builds a TokenExtractor that reads the secret
// verbatim from the named header, e.g. "X-API-Key".
func HeaderTokenExtractor(name string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		return strings.TrimSpace(r.Header.Get(name)), nil
	}
}

// CookieTokenExtractor builds a TokenExtractor that takes a request and
// extracts the secret from the cookie using the passed in cookieName.
func CookieTokenExtractor(cookieName string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil // No cookie, then no secret, so no error.
		}
		if err != nil {
			return "", err
		}

		return cookie.Value, nil
	}
}

// ParameterTokenExtractor returns a TokenExtractor that extracts
// the secret from the specified query string parameter.
func ParameterTokenExtractor(param string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		return r.URL.Query().Get(param), nil
	}
}

// MultiTokenExtractor returns a TokenExtractor that runs multiple TokenExtractors
// and takes the one that does not return an empty secret. If a TokenExtractor
// returns an error that error is immediately returned.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(r *http.Request) (string, error) {
		for _, ex := range extractors {
			raw, err := ex(r)
			if err != nil {
				return "", err
			}

			if raw != "" {
				return raw, nil
			}
		}
		return "", nil
	}
}
