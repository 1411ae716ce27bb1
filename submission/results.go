// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/store"
)

// Results returns the participant's passed poll rendered for display. The
// poll must be published, whatever its dates.
func (s *Service) Results(ctx context.Context, pollID int64, participant models.Participant) (models.PassedPollView, error) {
	tree, err := s.repo.GetPollTree(ctx, pollID)
	if errors.Is(err, store.ErrNotFound) {
		return models.PassedPollView{}, ErrPollNotFound
	}
	if err != nil {
		return models.PassedPollView{}, fmt.Errorf("failed to load poll: %w", err)
	}
	if !tree.IsPublished {
		return models.PassedPollView{}, ErrPollNotFound
	}

	if participant.IsZero() {
		return models.PassedPollView{}, ErrNoParticipant
	}

	pp, err := s.repo.FindPassedPoll(ctx, pollID, participant)
	if errors.Is(err, store.ErrNotFound) {
		return models.PassedPollView{}, ErrResultsNotFound
	}
	if err != nil {
		return models.PassedPollView{}, fmt.Errorf("failed to load passed poll: %w", err)
	}

	answers, err := s.repo.ListAnswers(ctx, pp.ID)
	if err != nil {
		return models.PassedPollView{}, fmt.Errorf("failed to load answers: %w", err)
	}

	return Assemble(tree, pp, answers, s.now()), nil
}

// Assemble renders stored answers with their question text and the chosen
// option text.
func Assemble(tree models.PollDetail, pp models.PassedPoll, answers []models.Answer, now time.Time) models.PassedPollView {
	questions := make(map[int64]models.Question, len(tree.Questions))
	choices := make(map[int64]string)
	for _, q := range tree.Questions {
		questions[q.ID] = q
		for _, c := range q.Choices {
			choices[c.ID] = c.Text
		}
	}

	view := models.PassedPollView{
		ID:        pp.ID,
		Poll:      tree.Poll,
		AUID:      pp.AUID,
		UserID:    pp.UserID,
		PassedAt:  pp.PassedAt,
		PassedAgo: humanize.RelTime(pp.PassedAt, now, "ago", "from now"),
		Answers:   make([]models.AnswerView, 0, len(answers)),
	}

	for _, a := range answers {
		q := questions[a.QuestionID]
		av := models.AnswerView{
			ID:           a.ID,
			Question:     q.Text,
			QuestionType: q.Type,
			AnswerText:   a.AnswerText,
		}
		if a.ChoiceID != nil {
			if text, ok := choices[*a.ChoiceID]; ok {
				av.Choice = &text
			}
		}
		view.Answers = append(view.Answers, av)
	}

	return view
}
