// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/pollpass/db"
	"github.com/danielhkuo/pollpass/models"
)

const passedPollColumns = `id, poll_id, auid, user_id, passed_at, ip_hash, user_agent`

func scanPassedPoll(row interface{ Scan(...any) error }) (models.PassedPoll, error) {
	var (
		pp                models.PassedPoll
		auid, userID      sql.NullInt64
		ipHash, userAgent sql.NullString
	)
	if err := row.Scan(&pp.ID, &pp.PollID, &auid, &userID, &pp.PassedAt, &ipHash, &userAgent); err != nil {
		return models.PassedPoll{}, err
	}
	pp.AUID = nullInt64(auid)
	pp.UserID = nullInt64(userID)
	pp.IPHash = nullString(ipHash)
	pp.UserAgent = nullString(userAgent)
	return pp, nil
}

// FindPassedPoll returns the participant's passed poll for a poll, or
// ErrNotFound when they have not passed it.
func (s *Store) FindPassedPoll(ctx context.Context, pollID int64, participant models.Participant) (models.PassedPoll, error) {
	var where whereClause
	where.add("poll_id = ?", pollID)
	switch {
	case participant.UserID != nil:
		where.add("user_id = ?", *participant.UserID)
	case participant.AUID != nil:
		where.add("auid = ?", *participant.AUID)
	default:
		return models.PassedPoll{}, ErrNotFound
	}

	pp, err := scanPassedPoll(s.db.QueryRowContext(ctx, `
		SELECT `+passedPollColumns+` FROM passed_poll`+where.String()+`
	`, where.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PassedPoll{}, ErrNotFound
	}
	if err != nil {
		return models.PassedPoll{}, fmt.Errorf("failed to query passed poll: %w", err)
	}
	return pp, nil
}

// CreatePassedPoll stores a passed poll and its answers atomically. Either
// all rows are written or none are. A second pass by the same participant
// fails with ErrAlreadyPassed.
func (s *Store) CreatePassedPoll(ctx context.Context, pp models.PassedPoll, answers []models.Answer) (models.PassedPoll, error) {
	if pp.PassedAt.IsZero() {
		pp.PassedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PassedPoll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO passed_poll (poll_id, auid, user_id, passed_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, pp.PollID, pp.AUID, pp.UserID, pp.PassedAt, pp.IPHash, pp.UserAgent).Scan(&pp.ID)
	if db.IsUniqueViolation(err) {
		return models.PassedPoll{}, ErrAlreadyPassed
	}
	if db.IsForeignKeyViolation(err) {
		return models.PassedPoll{}, ErrInvalidReference
	}
	if err != nil {
		return models.PassedPoll{}, fmt.Errorf("failed to insert passed poll: %w", err)
	}

	stored, err := insertAnswers(ctx, tx, pp.ID, answers)
	if err != nil {
		return models.PassedPoll{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.PassedPoll{}, fmt.Errorf("failed to commit passed poll: %w", err)
	}

	pp.Answers = stored
	return pp, nil
}

func insertAnswers(ctx context.Context, q queryer, passedPollID int64, answers []models.Answer) ([]models.Answer, error) {
	stored := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		a.PassedPollID = passedPollID
		err := q.QueryRowContext(ctx, `
			INSERT INTO answer (passed_poll_id, question_id, answer_text, choice_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, a.PassedPollID, a.QuestionID, a.AnswerText, a.ChoiceID).Scan(&a.ID)
		if db.IsForeignKeyViolation(err) {
			return nil, ErrInvalidReference
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert answer: %w", err)
		}
		stored = append(stored, a)
	}
	return stored, nil
}

// ListAnswers returns a passed poll's answers in insertion order.
func (s *Store) ListAnswers(ctx context.Context, passedPollID int64) ([]models.Answer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, passed_poll_id, question_id, answer_text, choice_id
		FROM answer
		WHERE passed_poll_id = $1
		ORDER BY id ASC
	`, passedPollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var (
			a        models.Answer
			text     sql.NullString
			choiceID sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.PassedPollID, &a.QuestionID, &text, &choiceID); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		a.AnswerText = nullString(text)
		a.ChoiceID = nullInt64(choiceID)
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
