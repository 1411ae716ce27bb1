// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - sqlite: modernc.org/sqlite, foreign keys enabled, one connection
  - postgres: github.com/lib/pq

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: Name, validity window and published flag
  - question: Typed prompts per poll
  - answer_choice: Options per question
  - passed_poll: One completed attempt per participant per poll
  - answer: Stored responses per passed poll

# Relationships

	poll 1──* question 1──* answer_choice
	poll 1──* passed_poll 1──* answer
	question 1──* answer
	answer_choice 1──* answer

All foreign keys use ON DELETE CASCADE.

# Constraints

passed_poll carries unique indexes on (poll_id, auid) and (poll_id, user_id)
and a check that exactly one identity column is set. NULLs never collide in
a unique index, so each index only constrains its own kind of participant.

IsUniqueViolation and IsForeignKeyViolation classify constraint errors from
both drivers so the store can map them to domain errors.
*/
package db
