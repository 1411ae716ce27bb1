// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON (validate tags are checked by handlers):

  - CreatePollRequest: name, start_date, finish_date, is_published
  - UpdatePollRequest: name, finish_date (start_date is immutable)
  - QuestionRequest: poll, question_text, question_type, position
  - AnswerChoiceRequest: question, choice_text, position
  - SubmitAnswerRequest: question, answer_text, choices

# Domain Types

Types mirroring the database rows:

  - Poll: name, validity window, published flag
  - Question: typed prompt (T, 1, M) with nested answer_choices
  - AnswerChoice: selectable option of a question
  - PassedPoll: one participant's completed attempt
  - Answer: one stored response row

PollDetail bundles a poll with its questions and choices; it is the input
of the submission validator.

# Dates

Poll windows use Date, a calendar day serialized as YYYY-MM-DD:

	d, err := models.ParseDate("2025-03-01")
	active := poll.IsActive(models.DateOf(time.Now().UTC()))

# Participants

A Participant is either anonymous (AUID) or an authenticated user (UserID):

	p := models.AnonymousParticipant(42)
	p := models.UserParticipant(7)

# Results

PassedPollView is the read projection returned by the results endpoint,
rendering each answer with its question text and chosen option text.
*/
package models
