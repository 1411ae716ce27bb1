// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollpass/middleware"
	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/policy"
	"github.com/danielhkuo/pollpass/store"
)

type PollHandler struct {
	store *store.Store
}

func NewPollHandler(s *store.Store) *PollHandler {
	return &PollHandler{store: s}
}

// ListPolls handles GET /polls/
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	isAdmin := policy.IsAdmin(middleware.IdentityFromContext(r.Context()))

	polls, err := h.store.ListPolls(r.Context(), policy.VisiblePolls(isAdmin))
	if err != nil {
		writeError(w, err, "poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// CreatePoll handles POST /polls/ (admin)
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg, ok := validateRequest(req); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if req.StartDate.After(*req.FinishDate) {
		writeError(w, errDateOrder, "poll")
		return
	}

	poll, err := h.store.CreatePoll(r.Context(), models.Poll{
		Name:        req.Name,
		StartDate:   *req.StartDate,
		FinishDate:  *req.FinishDate,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		writeError(w, err, "poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "published", poll.IsPublished)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// GetPoll handles GET /polls/{id}/
// Unpublished polls are only visible to admins.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "poll")
	if !ok {
		return
	}

	tree, err := h.store.GetPollTree(r.Context(), id)
	if err != nil {
		writeError(w, err, "poll")
		return
	}

	isAdmin := policy.IsAdmin(middleware.IdentityFromContext(r.Context()))
	if !policy.CanViewPoll(tree.Poll, isAdmin) {
		writeError(w, store.ErrNotFound, "poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tree)
}

// UpdatePoll handles PUT /polls/{id}/ (admin)
// start_date and is_published are read-only here.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "poll")
	if !ok {
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg, ok := validateRequest(req); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	current, err := h.store.GetPoll(r.Context(), id)
	if err != nil {
		writeError(w, err, "poll")
		return
	}
	if current.StartDate.After(*req.FinishDate) {
		writeError(w, errDateOrder, "poll")
		return
	}

	if _, err := h.store.UpdatePoll(r.Context(), id, req.Name, *req.FinishDate); err != nil {
		writeError(w, err, "poll")
		return
	}

	tree, err := h.store.GetPollTree(r.Context(), id)
	if err != nil {
		writeError(w, err, "poll")
		return
	}

	slog.Info("poll updated", "poll_id", id)

	middleware.JSONResponse(w, http.StatusOK, tree)
}

// DeletePoll handles DELETE /polls/{id}/ (admin)
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "poll")
	if !ok {
		return
	}

	if err := h.store.DeletePoll(r.Context(), id); err != nil {
		writeError(w, err, "poll")
		return
	}

	slog.Info("poll deleted", "poll_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// PublishPoll handles POST /polls/{id}/publish/ (admin)
func (h *PollHandler) PublishPoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "poll")
	if !ok {
		return
	}

	if err := h.store.PublishPoll(r.Context(), id); err != nil {
		writeError(w, err, "poll")
		return
	}

	slog.Info("poll published", "poll_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.PublishPollResponse{IsPublished: true})
}
