// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollpass/models"
)

// samplePoll: Q1 free text, Q2 single choice {C1, C2}, Q3 multiple choice {C3, C4, C5}
func samplePoll() models.PollDetail {
	return models.PollDetail{
		Poll: models.Poll{ID: 1, Name: "Sample", IsPublished: true},
		Questions: []models.Question{
			{ID: 1, PollID: 1, Text: "Name?", Type: models.QuestionText},
			{ID: 2, PollID: 1, Text: "Colour?", Type: models.QuestionSingleChoice, Choices: []models.AnswerChoice{
				{ID: 1, QuestionID: 2, Text: "Red"},
				{ID: 2, QuestionID: 2, Text: "Blue"},
			}},
			{ID: 3, PollID: 1, Text: "Pets?", Type: models.QuestionMultipleChoice, Choices: []models.AnswerChoice{
				{ID: 3, QuestionID: 3, Text: "Cat"},
				{ID: 4, QuestionID: 3, Text: "Dog"},
				{ID: 5, QuestionID: 3, Text: "Fish"},
			}},
		},
	}
}

func text(s string) *string { return &s }

func validSubmission() []models.SubmitAnswerRequest {
	return []models.SubmitAnswerRequest{
		{QuestionID: 1, AnswerText: text("hello")},
		{QuestionID: 2, Choices: []int64{1}},
		{QuestionID: 3, Choices: []int64{3, 4}},
	}
}

func TestValidateAccepts(t *testing.T) {
	validated, err := Validate(samplePoll(), validSubmission())
	require.NoError(t, err)
	require.Len(t, validated, 3)

	assert.Equal(t, "hello", validated[0].Text)
	assert.Empty(t, validated[0].Choices)
	require.Len(t, validated[1].Choices, 1)
	assert.Equal(t, "Red", validated[1].Choices[0].Text)
	require.Len(t, validated[2].Choices, 2)

	rows := Materialize(9, validated)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, int64(9), r.PassedPollID)
	}
	require.NotNil(t, rows[0].AnswerText)
	assert.Nil(t, rows[0].ChoiceID)
	assert.Equal(t, int64(3), rows[2].QuestionID)
	assert.Equal(t, int64(3), rows[3].QuestionID)
	assert.Nil(t, rows[3].AnswerText)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name      string
		modify    func([]models.SubmitAnswerRequest) []models.SubmitAnswerRequest
		wantIndex int
		wantMsg   string
	}{
		{
			name: "question from another poll",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				return append(a, models.SubmitAnswerRequest{QuestionID: 99, AnswerText: text("x")})
			},
			wantIndex: 3,
			wantMsg:   MsgInvalidQuestion,
		},
		{
			name: "empty text",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				a[0].AnswerText = text("")
				return a
			},
			wantIndex: 0,
			wantMsg:   MsgMissingText,
		},
		{
			name: "absent text",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				a[0].AnswerText = nil
				a[0].Choices = []int64{1}
				return a
			},
			wantIndex: 0,
			wantMsg:   MsgMissingText,
		},
		{
			name: "text too long",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				a[0].AnswerText = text(strings.Repeat("a", MaxAnswerTextLength+1))
				return a
			},
			wantIndex: 0,
			wantMsg:   MsgTextTooLong,
		},
		{
			name: "no choices",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				a[1].Choices = nil
				return a
			},
			wantIndex: 1,
			wantMsg:   MsgMissingAnswer,
		},
		{
			name: "choice of another question",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				a[1].Choices = []int64{3}
				return a
			},
			wantIndex: 1,
			wantMsg:   MsgInvalidChoice,
		},
		{
			name: "negative choice",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				a[2].Choices = []int64{-3}
				return a
			},
			wantIndex: 2,
			wantMsg:   MsgInvalidChoice,
		},
		{
			name: "single choice overselected",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				a[1].Choices = []int64{1, 2}
				return a
			},
			wantIndex: 1,
			wantMsg:   MsgTooManyChoices,
		},
		{
			name: "duplicate question",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				return append(a, models.SubmitAnswerRequest{QuestionID: 1, AnswerText: text("again")})
			},
			wantIndex: -1,
			wantMsg:   MsgDuplicateQuestions,
		},
		{
			name: "missing question",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				return a[:2]
			},
			wantIndex: -1,
			wantMsg:   MsgMissingQuestions,
		},
		{
			name: "empty submission",
			modify: func(a []models.SubmitAnswerRequest) []models.SubmitAnswerRequest {
				return nil
			},
			wantIndex: -1,
			wantMsg:   MsgMissingQuestions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(samplePoll(), tt.modify(validSubmission()))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantIndex, verr.Index)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestValidateDuplicateOnlyFirstQuestion(t *testing.T) {
	_, err := Validate(samplePoll(), []models.SubmitAnswerRequest{
		{QuestionID: 1, AnswerText: text("a")},
		{QuestionID: 1, AnswerText: text("b")},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgDuplicateQuestions, verr.Message)
}

func TestValidateDeduplicatesChoices(t *testing.T) {
	raw := validSubmission()
	raw[1].Choices = []int64{2, 2, 2}
	raw[2].Choices = []int64{5, 3, 5, 3}

	validated, err := Validate(samplePoll(), raw)
	require.NoError(t, err)
	require.Len(t, validated[1].Choices, 1)
	assert.Equal(t, int64(2), validated[1].Choices[0].ID)
	require.Len(t, validated[2].Choices, 2)
	assert.Equal(t, int64(3), validated[2].Choices[0].ID)
	assert.Equal(t, int64(5), validated[2].Choices[1].ID)

	assert.Len(t, Materialize(1, validated), 4)
}

func TestValidateDropsExtraneousFields(t *testing.T) {
	raw := validSubmission()
	raw[0].Choices = []int64{1}
	raw[1].AnswerText = text("ignored")
	choice := int64(2)
	raw[1].Choice = &choice

	validated, err := Validate(samplePoll(), raw)
	require.NoError(t, err)
	assert.Empty(t, validated[0].Choices)
	assert.Empty(t, validated[1].Text)
	assert.Equal(t, int64(1), validated[1].Choices[0].ID)

	rows := Materialize(1, validated)
	require.Len(t, rows, 4)
	assert.Nil(t, rows[0].ChoiceID)
	assert.Nil(t, rows[1].AnswerText)
}

func TestValidateNoQuestions(t *testing.T) {
	empty := models.PollDetail{Poll: models.Poll{ID: 1, IsPublished: true}}

	validated, err := Validate(empty, nil)
	require.NoError(t, err)
	assert.Empty(t, validated)
	assert.Empty(t, Materialize(1, validated))
}

func TestValidationErrorString(t *testing.T) {
	assert.Equal(t, "answer 2: invalid choice", answerError(2, MsgInvalidChoice).Error())
	assert.Equal(t, "duplicate question answers", submissionError(MsgDuplicateQuestions).Error())
}
