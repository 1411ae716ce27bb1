package models

import (
	"strconv"
	"time"
)

// QuestionType is the storage code of a question's answer shape.
type QuestionType string

// Question type codes
const (
	QuestionText           QuestionType = "T"
	QuestionSingleChoice   QuestionType = "1"
	QuestionMultipleChoice QuestionType = "M"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionSingleChoice, QuestionMultipleChoice:
		return true
	}
	return false
}

// IsChoiceType reports whether answers select predefined choices.
func (t QuestionType) IsChoiceType() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

// Request types

type CreatePollRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	StartDate   *Date  `json:"start_date" validate:"required"`
	FinishDate  *Date  `json:"finish_date" validate:"required"`
	IsPublished bool   `json:"is_published"`
}

// start_date and is_published are read-only on update
type UpdatePollRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	FinishDate *Date  `json:"finish_date" validate:"required"`
}

type QuestionRequest struct {
	PollID   int64        `json:"poll" validate:"required"`
	Text     string       `json:"question_text" validate:"required,max=200"`
	Type     QuestionType `json:"question_type" validate:"required,oneof=T 1 M"`
	Position int          `json:"position" validate:"min=0,max=32767"`
}

type AnswerChoiceRequest struct {
	QuestionID int64  `json:"question" validate:"required"`
	Text       string `json:"choice_text" validate:"required,max=100"`
	Position   int    `json:"position" validate:"min=0,max=32767"`
}

// SubmitAnswerRequest is one element of the pass request body.
// Choice is accepted for compatibility but never read.
type SubmitAnswerRequest struct {
	QuestionID int64   `json:"question"`
	AnswerText *string `json:"answer_text,omitempty"`
	Choice     *int64  `json:"choice,omitempty"`
	Choices    []int64 `json:"choices,omitempty"`
}

// Response types

type PublishPollResponse struct {
	IsPublished bool `json:"is_published"`
}

// Domain types

type Poll struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	StartDate   Date      `json:"start_date"`
	FinishDate  Date      `json:"finish_date"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsActive reports whether the poll accepts submissions on the given day.
// Both ends of the window are inclusive.
func (p Poll) IsActive(today Date) bool {
	return p.IsPublished && !today.Before(p.StartDate) && !today.After(p.FinishDate)
}

type Question struct {
	ID       int64          `json:"id"`
	PollID   int64          `json:"poll"`
	Text     string         `json:"question_text"`
	Type     QuestionType   `json:"question_type"`
	Position int            `json:"position"`
	Choices  []AnswerChoice `json:"answer_choices"`
}

func (q Question) IsChoiceType() bool {
	return q.Type.IsChoiceType()
}

type AnswerChoice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question"`
	Text       string `json:"choice_text"`
	Position   int    `json:"position"`
}

// PollDetail is a poll with its questions and their choices loaded.
type PollDetail struct {
	Poll
	Questions []Question `json:"questions"`
}

// Participant identifies who passes a poll: an anonymous id or an
// authenticated user, never both.
type Participant struct {
	AUID   *int64
	UserID *int64
}

func AnonymousParticipant(auid int64) Participant {
	return Participant{AUID: &auid}
}

func UserParticipant(userID int64) Participant {
	return Participant{UserID: &userID}
}

func (p Participant) IsZero() bool {
	return p.AUID == nil && p.UserID == nil
}

func (p Participant) String() string {
	switch {
	case p.AUID != nil:
		return "auid:" + strconv.FormatInt(*p.AUID, 10)
	case p.UserID != nil:
		return "user:" + strconv.FormatInt(*p.UserID, 10)
	}
	return "none"
}

type PassedPoll struct {
	ID        int64     `json:"id"`
	PollID    int64     `json:"poll"`
	AUID      *int64    `json:"auid"`
	UserID    *int64    `json:"user"`
	PassedAt  time.Time `json:"passed_at"`
	IPHash    *string   `json:"-"` // Never expose in JSON
	UserAgent *string   `json:"-"` // Never expose in JSON
	Answers   []Answer  `json:"answers"`
}

func (pp PassedPoll) Participant() Participant {
	return Participant{AUID: pp.AUID, UserID: pp.UserID}
}

// Answer holds either AnswerText or ChoiceID.
type Answer struct {
	ID           int64   `json:"id"`
	PassedPollID int64   `json:"passed_poll"`
	QuestionID   int64   `json:"question"`
	AnswerText   *string `json:"answer_text"`
	ChoiceID     *int64  `json:"choice"`
}

// Results view types

type PassedPollView struct {
	ID        int64        `json:"id"`
	Poll      Poll         `json:"poll"`
	AUID      *int64       `json:"auid"`
	UserID    *int64       `json:"user"`
	PassedAt  time.Time    `json:"passed_at"`
	PassedAgo string       `json:"passed_ago"`
	Answers   []AnswerView `json:"answers"`
}

type AnswerView struct {
	ID           int64        `json:"id"`
	Question     string       `json:"question"`
	QuestionType QuestionType `json:"question_type"`
	AnswerText   *string      `json:"answer_text"`
	Choice       *string      `json:"choice"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
