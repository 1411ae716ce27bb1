// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/pollpass/db"
	"github.com/danielhkuo/pollpass/models"
)

// QuestionFilter narrows question lookups. Zero fields match everything.
type QuestionFilter struct {
	ID            int64
	PollID        int64
	PublishedOnly bool
}

func (f QuestionFilter) where() whereClause {
	var w whereClause
	if f.ID != 0 {
		w.add("q.id = ?", f.ID)
	}
	if f.PollID != 0 {
		w.add("q.poll_id = ?", f.PollID)
	}
	if f.PublishedOnly {
		w.add("p.is_published = ?", true)
	}
	return w
}

// ListQuestions returns matching questions ordered by position (highest
// first) with their choices attached.
func (s *Store) ListQuestions(ctx context.Context, filter QuestionFilter) ([]models.Question, error) {
	where := filter.where()
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.poll_id, q.question_text, q.question_type, q.position
		FROM question q
		JOIN poll p ON p.id = q.poll_id`+where.String()+`
		ORDER BY q.position DESC, q.id ASC
	`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.PollID, &q.Text, &q.Type, &q.Position); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.Choices = []models.AnswerChoice{}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]int64, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	choices, err := s.choicesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if c, ok := choices[questions[i].ID]; ok {
			questions[i].Choices = c
		}
	}

	return questions, nil
}

// GetQuestion returns one question with its choices. Respects PublishedOnly
// so callers can hide questions of unpublished polls.
func (s *Store) GetQuestion(ctx context.Context, id int64, publishedOnly bool) (models.Question, error) {
	questions, err := s.ListQuestions(ctx, QuestionFilter{ID: id, PublishedOnly: publishedOnly})
	if err != nil {
		return models.Question{}, err
	}
	if len(questions) == 0 {
		return models.Question{}, ErrNotFound
	}
	return questions[0], nil
}

func (s *Store) CreateQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO question (poll_id, question_text, question_type, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, q.PollID, q.Text, q.Type, q.Position).Scan(&q.ID)
	if db.IsForeignKeyViolation(err) {
		return models.Question{}, ErrInvalidReference
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}
	q.Choices = []models.AnswerChoice{}
	return q, nil
}

func (s *Store) UpdateQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE question
		SET poll_id = $1, question_text = $2, question_type = $3, position = $4
		WHERE id = $5
	`, q.PollID, q.Text, q.Type, q.Position, q.ID)
	if db.IsForeignKeyViolation(err) {
		return models.Question{}, ErrInvalidReference
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to update question: %w", err)
	}
	if err := affected(res); err != nil {
		return models.Question{}, err
	}
	return s.GetQuestion(ctx, q.ID, false)
}

// DeleteQuestion cascades to the question's choices and to every answer
// referencing it.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM question WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return affected(res)
}
