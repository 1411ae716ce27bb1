// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound    = errors.New("poll not found")
	ErrResultsNotFound = errors.New("results not found")
	ErrNoParticipant   = errors.New("no participant specified")
	ErrAlreadyPassed   = errors.New("already passed")
)

// Validation messages
const (
	MsgInvalidQuestion    = "invalid question"
	MsgMissingText        = "missing text answer"
	MsgTextTooLong        = "answer text is too long"
	MsgMissingAnswer      = "missing answer"
	MsgInvalidChoice      = "invalid choice"
	MsgTooManyChoices     = "more than one choice selected"
	MsgDuplicateQuestions = "duplicate question answers"
	MsgMissingQuestions   = "missing answers to all questions"
)

// ValidationError rejects a submission. Index is the position of the
// offending answer, or -1 when the answer set as a whole is wrong.
type ValidationError struct {
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Message
	}
	return fmt.Sprintf("answer %d: %s", e.Index, e.Message)
}

func answerError(index int, msg string) *ValidationError {
	return &ValidationError{Index: index, Message: msg}
}

func submissionError(msg string) *ValidationError {
	return &ValidationError{Index: -1, Message: msg}
}
