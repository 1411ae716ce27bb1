// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollpass/middleware"
	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/policy"
	"github.com/danielhkuo/pollpass/store"
)

type QuestionHandler struct {
	store *store.Store
}

func NewQuestionHandler(s *store.Store) *QuestionHandler {
	return &QuestionHandler{store: s}
}

// ListQuestions handles GET /questions/?poll=
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	pollID, err := queryID(r, "poll")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	isAdmin := policy.IsAdmin(middleware.IdentityFromContext(r.Context()))
	questions, err := h.store.ListQuestions(r.Context(), store.QuestionFilter{
		PollID:        pollID,
		PublishedOnly: !isAdmin,
	})
	if err != nil {
		writeError(w, err, "question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// CreateQuestion handles POST /questions/ (admin)
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	q, ok := decodeQuestion(w, r)
	if !ok {
		return
	}

	created, err := h.store.CreateQuestion(r.Context(), q)
	if errors.Is(err, store.ErrInvalidReference) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll")
		return
	}
	if err != nil {
		writeError(w, err, "question")
		return
	}

	slog.Info("question created", "question_id", created.ID, "poll_id", created.PollID)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// GetQuestion handles GET /questions/{id}/
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "question")
	if !ok {
		return
	}

	isAdmin := policy.IsAdmin(middleware.IdentityFromContext(r.Context()))
	q, err := h.store.GetQuestion(r.Context(), id, !isAdmin)
	if err != nil {
		writeError(w, err, "question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}

// UpdateQuestion handles PUT /questions/{id}/ (admin)
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "question")
	if !ok {
		return
	}

	q, ok := decodeQuestion(w, r)
	if !ok {
		return
	}
	q.ID = id

	updated, err := h.store.UpdateQuestion(r.Context(), q)
	if errors.Is(err, store.ErrInvalidReference) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll")
		return
	}
	if err != nil {
		writeError(w, err, "question")
		return
	}

	slog.Info("question updated", "question_id", id)

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// DeleteQuestion handles DELETE /questions/{id}/ (admin)
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "question")
	if !ok {
		return
	}

	if err := h.store.DeleteQuestion(r.Context(), id); err != nil {
		writeError(w, err, "question")
		return
	}

	slog.Info("question deleted", "question_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func decodeQuestion(w http.ResponseWriter, r *http.Request) (models.Question, bool) {
	var req models.QuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return models.Question{}, false
	}
	if msg, ok := validateRequest(req); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return models.Question{}, false
	}

	return models.Question{
		PollID:   req.PollID,
		Text:     req.Text,
		Type:     req.Type,
		Position: req.Position,
	}, true
}
