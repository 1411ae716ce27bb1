// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/pollpass/auth"
	"github.com/danielhkuo/pollpass/cliparse"
	"github.com/danielhkuo/pollpass/metrics"
	"github.com/danielhkuo/pollpass/middleware"
	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/policy"
	"github.com/danielhkuo/pollpass/submission"
)

type PassHandler struct {
	svc     *submission.Service
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewPassHandler(svc *submission.Service, cfg cliparse.Config, m *metrics.Metrics) *PassHandler {
	return &PassHandler{svc: svc, cfg: cfg, metrics: m}
}

// PassPoll handles POST /polls/{id}/pass/
// Body is a list of answers; ?auid= selects an anonymous participant,
// otherwise the authenticated caller passes the poll.
func (h *PassHandler) PassPoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "poll")
	if !ok {
		return
	}

	var raw []models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &raw); err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	participant, _ := policy.ResolveParticipant(r.URL.Query(), middleware.IdentityFromContext(r.Context()))
	meta := submission.SubmitMeta{
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.TokenSalt),
		UserAgent: r.UserAgent(),
	}

	pp, err := h.svc.Submit(r.Context(), id, participant, raw, meta)
	h.metrics.ObserveSubmission(submissionOutcome(err))
	if err != nil {
		writeError(w, err, "poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, pp)
}

// GetResults handles GET /polls/{id}/results/
func (h *PassHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "poll")
	if !ok {
		return
	}

	participant, _ := policy.ResolveParticipant(r.URL.Query(), middleware.IdentityFromContext(r.Context()))

	view, err := h.svc.Results(r.Context(), id, participant)
	if err != nil {
		writeError(w, err, "poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

func submissionOutcome(err error) string {
	var verr *submission.ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeAccepted
	case errors.Is(err, submission.ErrAlreadyPassed):
		return metrics.OutcomeDuplicate
	case errors.As(err, &verr),
		errors.Is(err, submission.ErrPollNotFound),
		errors.Is(err, submission.ErrNoParticipant):
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
