// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the SQL repository for polls, questions, answer choices,
passed polls and answers.

Every method takes a context and uses $N placeholders, so the same queries run
on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).

	s := store.New(conn)
	tree, err := s.GetPollTree(ctx, pollID)

# Ordering

  - Polls: unpublished first, then newest first
  - Questions and answer choices: highest position first, ties by id

# Errors

  - ErrNotFound: no row matched
  - ErrAlreadyPublished: publish on a published poll
  - ErrAlreadyPassed: unique index on passed_poll rejected the insert
  - ErrInvalidReference: a foreign key target is missing

# Transactions

CreatePassedPoll writes the passed poll and all of its answers in a single
transaction. Any failure rolls back every row.
*/
package store
