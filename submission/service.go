// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/store"
)

// Repository is the storage the submission flow needs. *store.Store
// implements it.
type Repository interface {
	GetPollTree(ctx context.Context, id int64) (models.PollDetail, error)
	FindPassedPoll(ctx context.Context, pollID int64, participant models.Participant) (models.PassedPoll, error)
	CreatePassedPoll(ctx context.Context, pp models.PassedPoll, answers []models.Answer) (models.PassedPoll, error)
	ListAnswers(ctx context.Context, passedPollID int64) ([]models.Answer, error)
}

// Service runs poll submissions and results lookups
type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock used for activity checks and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitMeta is request metadata stored with a passed poll
type SubmitMeta struct {
	IPHash    string
	UserAgent string
}

// Submit records a participant passing a poll. The poll must be active
// today, the participant must not have passed it yet and the answers must
// cover every question. Nothing is written unless all checks pass.
func (s *Service) Submit(ctx context.Context, pollID int64, participant models.Participant, raw []models.SubmitAnswerRequest, meta SubmitMeta) (models.PassedPoll, error) {
	now := s.now().UTC()

	tree, err := s.repo.GetPollTree(ctx, pollID)
	if errors.Is(err, store.ErrNotFound) {
		return models.PassedPoll{}, ErrPollNotFound
	}
	if err != nil {
		return models.PassedPoll{}, fmt.Errorf("failed to load poll: %w", err)
	}
	if !tree.IsActive(models.DateOf(now)) {
		return models.PassedPoll{}, ErrPollNotFound
	}

	if participant.IsZero() {
		return models.PassedPoll{}, ErrNoParticipant
	}

	_, err = s.repo.FindPassedPoll(ctx, pollID, participant)
	if err == nil {
		return models.PassedPoll{}, ErrAlreadyPassed
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.PassedPoll{}, fmt.Errorf("failed to check passed poll: %w", err)
	}

	validated, err := Validate(tree, raw)
	if err != nil {
		return models.PassedPoll{}, err
	}

	pp := models.PassedPoll{
		PollID:   pollID,
		AUID:     participant.AUID,
		UserID:   participant.UserID,
		PassedAt: now,
	}
	if meta.IPHash != "" {
		pp.IPHash = &meta.IPHash
	}
	if meta.UserAgent != "" {
		pp.UserAgent = &meta.UserAgent
	}

	// Row ids are assigned inside the transaction
	created, err := s.repo.CreatePassedPoll(ctx, pp, Materialize(0, validated))
	if errors.Is(err, store.ErrAlreadyPassed) {
		// Lost a race with a concurrent submission
		return models.PassedPoll{}, ErrAlreadyPassed
	}
	if err != nil {
		return models.PassedPoll{}, fmt.Errorf("failed to store passed poll: %w", err)
	}

	slog.Info("poll passed",
		"poll_id", pollID,
		"passed_poll_id", created.ID,
		"participant", participant.String(),
		"answers", len(created.Answers),
	)

	return created, nil
}
