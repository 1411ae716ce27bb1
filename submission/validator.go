// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"slices"
	"unicode/utf8"

	"github.com/danielhkuo/pollpass/models"
)

// MaxAnswerTextLength bounds free-text answers, in characters
const MaxAnswerTextLength = 100

// ValidatedAnswer is one accepted answer. Text is set for free-text
// questions, Choices for choice questions.
type ValidatedAnswer struct {
	Question models.Question
	Text     string
	Choices  []models.AnswerChoice
}

// Validate checks raw answers against the poll's questions. Each answer is
// checked in order and the first failure is returned. Once every answer
// passes, the set must cover each question exactly once.
func Validate(tree models.PollDetail, raw []models.SubmitAnswerRequest) ([]ValidatedAnswer, error) {
	questions := make(map[int64]models.Question, len(tree.Questions))
	for _, q := range tree.Questions {
		questions[q.ID] = q
	}

	validated := make([]ValidatedAnswer, 0, len(raw))
	for i, r := range raw {
		q, ok := questions[r.QuestionID]
		if !ok {
			return nil, answerError(i, MsgInvalidQuestion)
		}

		va, err := validateAnswer(i, q, r)
		if err != nil {
			return nil, err
		}
		validated = append(validated, va)
	}

	seen := make(map[int64]struct{}, len(validated))
	for _, va := range validated {
		if _, dup := seen[va.Question.ID]; dup {
			return nil, submissionError(MsgDuplicateQuestions)
		}
		seen[va.Question.ID] = struct{}{}
	}
	if len(seen) != len(questions) {
		return nil, submissionError(MsgMissingQuestions)
	}

	return validated, nil
}

func validateAnswer(index int, q models.Question, r models.SubmitAnswerRequest) (ValidatedAnswer, error) {
	va := ValidatedAnswer{Question: q}

	if !q.IsChoiceType() {
		if r.AnswerText == nil || *r.AnswerText == "" {
			return ValidatedAnswer{}, answerError(index, MsgMissingText)
		}
		if utf8.RuneCountInString(*r.AnswerText) > MaxAnswerTextLength {
			return ValidatedAnswer{}, answerError(index, MsgTextTooLong)
		}
		va.Text = *r.AnswerText
		return va, nil
	}

	if len(r.Choices) == 0 {
		return ValidatedAnswer{}, answerError(index, MsgMissingAnswer)
	}

	ids := slices.Clone(r.Choices)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	byID := make(map[int64]models.AnswerChoice, len(q.Choices))
	for _, c := range q.Choices {
		byID[c.ID] = c
	}

	// Ascending id order makes the reported choice deterministic
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return ValidatedAnswer{}, answerError(index, MsgInvalidChoice)
		}
		va.Choices = append(va.Choices, c)
	}

	if q.Type == models.QuestionSingleChoice && len(va.Choices) > 1 {
		return ValidatedAnswer{}, answerError(index, MsgTooManyChoices)
	}

	return va, nil
}

// Materialize expands validated answers into answer rows: one row for a
// free-text answer, one row per selected choice otherwise.
func Materialize(passedPollID int64, validated []ValidatedAnswer) []models.Answer {
	var rows []models.Answer
	for _, va := range validated {
		if !va.Question.IsChoiceType() {
			text := va.Text
			rows = append(rows, models.Answer{
				PassedPollID: passedPollID,
				QuestionID:   va.Question.ID,
				AnswerText:   &text,
			})
			continue
		}
		for _, c := range va.Choices {
			choiceID := c.ID
			rows = append(rows, models.Answer{
				PassedPollID: passedPollID,
				QuestionID:   va.Question.ID,
				ChoiceID:     &choiceID,
			})
		}
	}
	return rows
}
