// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/pollpass/auth"
	"github.com/danielhkuo/pollpass/cliparse"
	"github.com/danielhkuo/pollpass/db"
	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/store"
)

// TestDBURL is an in-memory SQLite database private to one connection
const TestDBURL = "file::memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		TokenSalt:    "test-token-salt",
	}
}

// Today is the current UTC date
func Today() models.Date {
	return models.DateOf(time.Now().UTC())
}

// CreatePoll inserts a poll. Active polls span yesterday to tomorrow.
func CreatePoll(t *testing.T, conn *sql.DB, name string, published bool) models.Poll {
	t.Helper()

	today := Today()
	return CreatePollWindow(t, conn, name, published, today.AddDays(-1), today.AddDays(1))
}

// CreatePollWindow inserts a poll with an explicit validity window
func CreatePollWindow(t *testing.T, conn *sql.DB, name string, published bool, start, finish models.Date) models.Poll {
	t.Helper()

	p, err := store.New(conn).CreatePoll(context.Background(), models.Poll{
		Name:        name,
		StartDate:   start,
		FinishDate:  finish,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return p
}

// CreateQuestion adds a question to a poll
func CreateQuestion(t *testing.T, conn *sql.DB, pollID int64, text string, qt models.QuestionType, position int) models.Question {
	t.Helper()

	q, err := store.New(conn).CreateQuestion(context.Background(), models.Question{
		PollID:   pollID,
		Text:     text,
		Type:     qt,
		Position: position,
	})
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return q
}

// CreateChoice adds an answer choice to a question
func CreateChoice(t *testing.T, conn *sql.DB, questionID int64, text string, position int) models.AnswerChoice {
	t.Helper()

	c, err := store.New(conn).CreateChoice(context.Background(), models.AnswerChoice{
		QuestionID: questionID,
		Text:       text,
		Position:   position,
	})
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}
	return c
}

// SamplePoll is a published, active poll with one question of each type
type SamplePoll struct {
	Poll   models.Poll
	Text   models.Question // free text
	Single models.Question // choices C1, C2
	Multi  models.Question // choices C3, C4, C5
	C1, C2 models.AnswerChoice
	C3, C4 models.AnswerChoice
	C5     models.AnswerChoice
}

// CreateSamplePoll builds a SamplePoll
func CreateSamplePoll(t *testing.T, conn *sql.DB) SamplePoll {
	t.Helper()

	var sp SamplePoll
	sp.Poll = CreatePoll(t, conn, "Sample Poll", true)
	sp.Text = CreateQuestion(t, conn, sp.Poll.ID, "What is your name?", models.QuestionText, 3)
	sp.Single = CreateQuestion(t, conn, sp.Poll.ID, "Favourite colour?", models.QuestionSingleChoice, 2)
	sp.Multi = CreateQuestion(t, conn, sp.Poll.ID, "Which pets do you have?", models.QuestionMultipleChoice, 1)
	sp.C1 = CreateChoice(t, conn, sp.Single.ID, "Red", 2)
	sp.C2 = CreateChoice(t, conn, sp.Single.ID, "Blue", 1)
	sp.C3 = CreateChoice(t, conn, sp.Multi.ID, "Cat", 3)
	sp.C4 = CreateChoice(t, conn, sp.Multi.ID, "Dog", 2)
	sp.C5 = CreateChoice(t, conn, sp.Multi.ID, "Fish", 1)
	return sp
}

// Tree loads the sample poll with its questions
func (sp SamplePoll) Tree(t *testing.T, conn *sql.DB) models.PollDetail {
	t.Helper()

	tree, err := store.New(conn).GetPollTree(context.Background(), sp.Poll.ID)
	if err != nil {
		t.Fatalf("Failed to load poll tree: %v", err)
	}
	return tree
}

// ValidSubmission answers every question of the sample poll
func (sp SamplePoll) ValidSubmission() []models.SubmitAnswerRequest {
	name := "Alice"
	return []models.SubmitAnswerRequest{
		{QuestionID: sp.Text.ID, AnswerText: &name},
		{QuestionID: sp.Single.ID, Choices: []int64{sp.C1.ID}},
		{QuestionID: sp.Multi.ID, Choices: []int64{sp.C3.ID, sp.C5.ID}},
	}
}

// UserToken returns a bearer token for a regular user
func UserToken(cfg cliparse.Config, userID int64) string {
	return auth.GenerateUserToken(userID, false, cfg.TokenSalt)
}

// AdminToken returns a bearer token for an administrator
func AdminToken(cfg cliparse.Config, userID int64) string {
	return auth.GenerateUserToken(userID, true, cfg.TokenSalt)
}

// BearerHeader builds the Authorization header for MakeRequest
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
