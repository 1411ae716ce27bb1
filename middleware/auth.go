// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollpass/auth"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the caller's identity
func WithIdentity(ctx context.Context, ident auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext returns the authenticated caller, or nil for an
// anonymous request
func IdentityFromContext(ctx context.Context) *auth.Identity {
	ident, ok := ctx.Value(identityKey{}).(auth.Identity)
	if !ok {
		return nil
	}
	return &ident
}

// Authenticate reads an optional "Authorization: Bearer <token>" header.
// Requests without one continue anonymously; a malformed or forged token
// is rejected with 401.
func Authenticate(salt string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				ErrorResponse(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			ident, err := auth.ParseUserToken(strings.TrimSpace(token), salt)
			if err != nil {
				slog.Warn("rejected bearer token", "error", err, "remote", r.RemoteAddr)
				ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// RequireAdmin lets only administrators through: anonymous callers get 401,
// authenticated non-admins 403
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFromContext(r.Context())
		if ident == nil {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !ident.IsAdmin {
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}
