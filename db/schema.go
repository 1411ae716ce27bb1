// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/pollpass/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	var ddl string
	switch dbType {
	case cliparse.DatabasePostgres:
		ddl = postgresSchema
	case cliparse.DatabaseSQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    start_date DATE NOT NULL,
    finish_date DATE NOT NULL,
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (start_date <= finish_date)
);

CREATE INDEX IF NOT EXISTS idx_poll_listing ON poll(is_published, created_at DESC);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    question_text VARCHAR(200) NOT NULL,
    question_type CHAR(1) NOT NULL CHECK (question_type IN ('T', '1', 'M')),
    position SMALLINT NOT NULL DEFAULT 0 CHECK (position >= 0)
);

CREATE INDEX IF NOT EXISTS idx_question_poll_id ON question(poll_id);

-- Answer choices
CREATE TABLE IF NOT EXISTS answer_choice (
    id BIGSERIAL PRIMARY KEY,
    question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    choice_text VARCHAR(100) NOT NULL,
    position SMALLINT NOT NULL DEFAULT 0 CHECK (position >= 0)
);

CREATE INDEX IF NOT EXISTS idx_answer_choice_question_id ON answer_choice(question_id);

-- Passed polls
CREATE TABLE IF NOT EXISTS passed_poll (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    auid BIGINT CHECK (auid >= 0),
    user_id BIGINT,
    passed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    ip_hash TEXT,
    user_agent TEXT,
    CHECK ((auid IS NULL) <> (user_id IS NULL))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_passed_poll_auid ON passed_poll(poll_id, auid);
CREATE UNIQUE INDEX IF NOT EXISTS idx_passed_poll_user ON passed_poll(poll_id, user_id);

-- Answers
CREATE TABLE IF NOT EXISTS answer (
    id BIGSERIAL PRIMARY KEY,
    passed_poll_id BIGINT NOT NULL REFERENCES passed_poll(id) ON DELETE CASCADE,
    question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    answer_text VARCHAR(100),
    choice_id BIGINT REFERENCES answer_choice(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_answer_passed_poll_id ON answer(passed_poll_id);
`

// SQLite needs foreign_keys enabled per connection for the cascades;
// Open takes care of that.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS poll (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL CHECK (length(name) <= 100),
    start_date DATE NOT NULL,
    finish_date DATE NOT NULL,
    is_published BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (start_date <= finish_date)
);

CREATE INDEX IF NOT EXISTS idx_poll_listing ON poll(is_published, created_at DESC);

CREATE TABLE IF NOT EXISTS question (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    question_text TEXT NOT NULL CHECK (length(question_text) <= 200),
    question_type TEXT NOT NULL CHECK (question_type IN ('T', '1', 'M')),
    position INTEGER NOT NULL DEFAULT 0 CHECK (position >= 0)
);

CREATE INDEX IF NOT EXISTS idx_question_poll_id ON question(poll_id);

CREATE TABLE IF NOT EXISTS answer_choice (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    choice_text TEXT NOT NULL CHECK (length(choice_text) <= 100),
    position INTEGER NOT NULL DEFAULT 0 CHECK (position >= 0)
);

CREATE INDEX IF NOT EXISTS idx_answer_choice_question_id ON answer_choice(question_id);

CREATE TABLE IF NOT EXISTS passed_poll (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    auid INTEGER CHECK (auid >= 0),
    user_id INTEGER,
    passed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    ip_hash TEXT,
    user_agent TEXT,
    CHECK ((auid IS NULL) <> (user_id IS NULL))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_passed_poll_auid ON passed_poll(poll_id, auid);
CREATE UNIQUE INDEX IF NOT EXISTS idx_passed_poll_user ON passed_poll(poll_id, user_id);

CREATE TABLE IF NOT EXISTS answer (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    passed_poll_id INTEGER NOT NULL REFERENCES passed_poll(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    answer_text TEXT CHECK (answer_text IS NULL OR length(answer_text) <= 100),
    choice_id INTEGER REFERENCES answer_choice(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_answer_passed_poll_id ON answer(passed_poll_id);
`
