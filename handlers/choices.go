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

type ChoiceHandler struct {
	store *store.Store
}

func NewChoiceHandler(s *store.Store) *ChoiceHandler {
	return &ChoiceHandler{store: s}
}

// ListChoices handles GET /answerchoices/?question=
func (h *ChoiceHandler) ListChoices(w http.ResponseWriter, r *http.Request) {
	questionID, err := queryID(r, "question")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	isAdmin := policy.IsAdmin(middleware.IdentityFromContext(r.Context()))
	choices, err := h.store.ListChoices(r.Context(), store.ChoiceFilter{
		QuestionID:    questionID,
		PublishedOnly: !isAdmin,
	})
	if err != nil {
		writeError(w, err, "answer choice")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, choices)
}

// CreateChoice handles POST /answerchoices/ (admin)
func (h *ChoiceHandler) CreateChoice(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeChoice(w, r)
	if !ok {
		return
	}

	created, err := h.store.CreateChoice(r.Context(), c)
	if errors.Is(err, store.ErrInvalidReference) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid question")
		return
	}
	if err != nil {
		writeError(w, err, "answer choice")
		return
	}

	slog.Info("answer choice created", "choice_id", created.ID, "question_id", created.QuestionID)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// GetChoice handles GET /answerchoices/{id}/
func (h *ChoiceHandler) GetChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "answer choice")
	if !ok {
		return
	}

	isAdmin := policy.IsAdmin(middleware.IdentityFromContext(r.Context()))
	c, err := h.store.GetChoice(r.Context(), id, !isAdmin)
	if err != nil {
		writeError(w, err, "answer choice")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, c)
}

// UpdateChoice handles PUT /answerchoices/{id}/ (admin)
func (h *ChoiceHandler) UpdateChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "answer choice")
	if !ok {
		return
	}

	c, ok := decodeChoice(w, r)
	if !ok {
		return
	}
	c.ID = id

	updated, err := h.store.UpdateChoice(r.Context(), c)
	if errors.Is(err, store.ErrInvalidReference) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid question")
		return
	}
	if err != nil {
		writeError(w, err, "answer choice")
		return
	}

	slog.Info("answer choice updated", "choice_id", id)

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// DeleteChoice handles DELETE /answerchoices/{id}/ (admin)
func (h *ChoiceHandler) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "answer choice")
	if !ok {
		return
	}

	if err := h.store.DeleteChoice(r.Context(), id); err != nil {
		writeError(w, err, "answer choice")
		return
	}

	slog.Info("answer choice deleted", "choice_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func decodeChoice(w http.ResponseWriter, r *http.Request) (models.AnswerChoice, bool) {
	var req models.AnswerChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return models.AnswerChoice{}, false
	}
	if msg, ok := validateRequest(req); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return models.AnswerChoice{}, false
	}

	return models.AnswerChoice{
		QuestionID: req.QuestionID,
		Text:       req.Text,
		Position:   req.Position,
	}, true
}
