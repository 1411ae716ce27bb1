// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/pollpass/models"
)

// PollFilter narrows poll listings
type PollFilter struct {
	PublishedOnly bool
}

const pollColumns = `id, name, start_date, finish_date, is_published, created_at`

func scanPoll(row interface{ Scan(...any) error }) (models.Poll, error) {
	var p models.Poll
	err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.FinishDate, &p.IsPublished, &p.CreatedAt)
	return p, err
}

// ListPolls returns polls unpublished first, newest first within each group.
func (s *Store) ListPolls(ctx context.Context, filter PollFilter) ([]models.Poll, error) {
	var where whereClause
	if filter.PublishedOnly {
		where.add("is_published = ?", true)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pollColumns+`
		FROM poll`+where.String()+`
		ORDER BY is_published ASC, created_at DESC, id DESC
	`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

func (s *Store) GetPoll(ctx context.Context, id int64) (models.Poll, error) {
	p, err := scanPoll(s.db.QueryRowContext(ctx, `
		SELECT `+pollColumns+` FROM poll WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	return p, nil
}

// GetPollTree loads a poll with its questions and their choices, all in
// display order.
func (s *Store) GetPollTree(ctx context.Context, id int64) (models.PollDetail, error) {
	poll, err := s.GetPoll(ctx, id)
	if err != nil {
		return models.PollDetail{}, err
	}

	questions, err := s.ListQuestions(ctx, QuestionFilter{PollID: id})
	if err != nil {
		return models.PollDetail{}, err
	}

	return models.PollDetail{Poll: poll, Questions: questions}, nil
}

func (s *Store) CreatePoll(ctx context.Context, p models.Poll) (models.Poll, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO poll (name, start_date, finish_date, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.Name, p.StartDate, p.FinishDate, p.IsPublished, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}
	return p, nil
}

// UpdatePoll changes the mutable poll fields. The start date and the
// published flag are never touched here.
func (s *Store) UpdatePoll(ctx context.Context, id int64, name string, finish models.Date) (models.Poll, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE poll SET name = $1, finish_date = $2 WHERE id = $3
	`, name, finish, id)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to update poll: %w", err)
	}
	if err := affected(res); err != nil {
		return models.Poll{}, err
	}
	return s.GetPoll(ctx, id)
}

// PublishPoll flips is_published from false to true. The conditional update
// makes the transition one-way even under concurrent requests.
func (s *Store) PublishPoll(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE poll SET is_published = $1 WHERE id = $2 AND is_published = $3
	`, true, id, false)
	if err != nil {
		return fmt.Errorf("failed to publish poll: %w", err)
	}
	if err := affected(res); !errors.Is(err, ErrNotFound) {
		return err
	}

	// Nothing changed: either missing or already published
	if _, err := s.GetPoll(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyPublished
}

// DeletePoll removes a poll; questions, choices, passed polls and answers
// go with it through the foreign key cascades.
func (s *Store) DeletePoll(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return affected(res)
}
