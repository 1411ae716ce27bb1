// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap route handlers with logging and metrics:

	mux.HandleFunc("GET /polls/{$}", middleware.WithLogging(middleware.WithMetrics(m, h.List)))

WithLogging logs request start and completion (status, duration_ms) under a
request id, echoed in X-Request-ID. WithMetrics labels requests with the
matched route pattern.

# Authentication

Authenticate parses an optional bearer token and stores the caller in the
request context:

	handler := middleware.Authenticate(cfg.TokenSalt)(mux)
	ident := middleware.IdentityFromContext(r.Context()) // nil when anonymous

Admin-only routes are wrapped with RequireAdmin (401 anonymous, 403 non-admin).

# Paths

NormalizePath accepts "/polls/1", "/polls/1.json" and "/polls/1/.json" for
the canonical "/polls/1/". Other format suffixes are 404.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used for the salted IP hash stored with passed polls.
*/
package middleware
