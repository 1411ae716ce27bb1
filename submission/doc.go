// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission validates and stores answers to a poll and reads them back.

# Submitting

	svc := submission.NewService(store.New(conn))
	pp, err := svc.Submit(ctx, pollID, participant, answers, meta)

Submit runs these steps and stops at the first failure:

 1. The poll exists and is active today (ErrPollNotFound)
 2. A participant is given (ErrNoParticipant)
 3. The participant has not passed the poll (ErrAlreadyPassed)
 4. Validate accepts the answers (*ValidationError)
 5. The passed poll and its answer rows are written in one transaction

A unique index on the passed poll table backs step 3, so two concurrent
submissions by one participant store at most one passed poll.

# Validation

Each answer must reference a question of the poll. Free-text answers need a
non-empty answer_text. Choice answers need at least one choice of that
question, and single-choice answers at most one. Duplicate choice ids collapse.
Afterwards every question must be answered exactly once.

Materialize turns accepted answers into rows. A multiple-choice answer with
three selections becomes three rows.

# Results

Results returns the participant's passed poll on a published poll with each
answer's question text and chosen option text.
*/
package submission
