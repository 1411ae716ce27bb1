// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollpass API.

# Handler Types

  - PollHandler: poll CRUD and publishing
  - QuestionHandler: question CRUD
  - ChoiceHandler: answer choice CRUD
  - PassHandler: poll submission and results

Handlers are created via constructor functions:

	s := store.New(db)
	pollHandler := handlers.NewPollHandler(s)
	passHandler := handlers.NewPassHandler(submission.NewService(s), cfg, m)

Handlers read the caller's identity from the request context (see
middleware.Authenticate). Admin-only routes are guarded by the router, while
read handlers hide unpublished polls, and their questions and choices, from
non-admins.

# Errors

All failures go through writeError, which maps store and submission errors
to HTTP statuses:

	*submission.ValidationError   → 400 with the reason
	store.ErrNotFound             → 404
	store.ErrAlreadyPublished     → 400
	submission.ErrAlreadyPassed   → 400
	submission.ErrNoParticipant   → 400
	store.ErrInvalidReference     → 400
	anything else                 → 500 (logged)

Request bodies are checked with go-playground/validator before any domain
rules run.
*/
package handlers
