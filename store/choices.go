// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/pollpass/db"
	"github.com/danielhkuo/pollpass/models"
)

// ChoiceFilter narrows answer choice lookups. Zero fields match everything.
type ChoiceFilter struct {
	ID            int64
	QuestionID    int64
	PublishedOnly bool
}

const choiceColumns = `c.id, c.question_id, c.choice_text, c.position`

func scanChoice(row interface{ Scan(...any) error }) (models.AnswerChoice, error) {
	var c models.AnswerChoice
	err := row.Scan(&c.ID, &c.QuestionID, &c.Text, &c.Position)
	return c, err
}

func (s *Store) ListChoices(ctx context.Context, filter ChoiceFilter) ([]models.AnswerChoice, error) {
	var where whereClause
	if filter.ID != 0 {
		where.add("c.id = ?", filter.ID)
	}
	if filter.QuestionID != 0 {
		where.add("c.question_id = ?", filter.QuestionID)
	}
	if filter.PublishedOnly {
		where.add("p.is_published = ?", true)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+choiceColumns+`
		FROM answer_choice c
		JOIN question q ON q.id = c.question_id
		JOIN poll p ON p.id = q.poll_id`+where.String()+`
		ORDER BY c.position DESC, c.id ASC
	`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answer choices: %w", err)
	}
	defer rows.Close()

	choices := []models.AnswerChoice{}
	for rows.Next() {
		c, err := scanChoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

func (s *Store) GetChoice(ctx context.Context, id int64, publishedOnly bool) (models.AnswerChoice, error) {
	choices, err := s.ListChoices(ctx, ChoiceFilter{ID: id, PublishedOnly: publishedOnly})
	if err != nil {
		return models.AnswerChoice{}, err
	}
	if len(choices) == 0 {
		return models.AnswerChoice{}, ErrNotFound
	}
	return choices[0], nil
}

// choicesFor groups the choices of the given questions by question id,
// each group in display order.
func (s *Store) choicesFor(ctx context.Context, questionIDs []int64) (map[int64][]models.AnswerChoice, error) {
	args := make([]any, len(questionIDs))
	for i, id := range questionIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+choiceColumns+`
		FROM answer_choice c
		WHERE c.question_id IN (`+placeholders(1, len(args))+`)
		ORDER BY c.position DESC, c.id ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answer choices: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]models.AnswerChoice)
	for rows.Next() {
		c, err := scanChoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer choice: %w", err)
		}
		grouped[c.QuestionID] = append(grouped[c.QuestionID], c)
	}
	return grouped, rows.Err()
}

func (s *Store) CreateChoice(ctx context.Context, c models.AnswerChoice) (models.AnswerChoice, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO answer_choice (question_id, choice_text, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.QuestionID, c.Text, c.Position).Scan(&c.ID)
	if db.IsForeignKeyViolation(err) {
		return models.AnswerChoice{}, ErrInvalidReference
	}
	if err != nil {
		return models.AnswerChoice{}, fmt.Errorf("failed to insert answer choice: %w", err)
	}
	return c, nil
}

func (s *Store) UpdateChoice(ctx context.Context, c models.AnswerChoice) (models.AnswerChoice, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE answer_choice
		SET question_id = $1, choice_text = $2, position = $3
		WHERE id = $4
	`, c.QuestionID, c.Text, c.Position, c.ID)
	if db.IsForeignKeyViolation(err) {
		return models.AnswerChoice{}, ErrInvalidReference
	}
	if err != nil {
		return models.AnswerChoice{}, fmt.Errorf("failed to update answer choice: %w", err)
	}
	if err := affected(res); err != nil {
		return models.AnswerChoice{}, err
	}
	return c, nil
}

func (s *Store) DeleteChoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM answer_choice WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete answer choice: %w", err)
	}
	return affected(res)
}
