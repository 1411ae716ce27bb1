// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollpass/middleware"
	"github.com/danielhkuo/pollpass/store"
	"github.com/danielhkuo/pollpass/submission"
)

var errDateOrder = errors.New("start date is after finish date")

// writeError maps domain errors to HTTP responses. Unknown errors are
// logged and reported as 500 without detail.
func writeError(w http.ResponseWriter, err error, resource string) {
	var verr *submission.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)

	case errors.Is(err, store.ErrNotFound), errors.Is(err, submission.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, submission.ErrResultsNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, store.ErrAlreadyPublished),
		errors.Is(err, submission.ErrNoParticipant),
		errors.Is(err, submission.ErrAlreadyPassed),
		errors.Is(err, errDateOrder):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrInvalidReference):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Referenced object does not exist")

	default:
		slog.Error("request failed", "resource", resource, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID parses the {id} path value. Anything but a positive integer is a
// resource that cannot exist.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, resource+" not found")
		return 0, false
	}
	return id, true
}

// queryID parses an optional integer filter parameter. Zero means absent.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name + " filter")
	}
	return id, nil
}
