// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/pollpass/cliparse"
	"github.com/danielhkuo/pollpass/handlers"
	"github.com/danielhkuo/pollpass/metrics"
	"github.com/danielhkuo/pollpass/middleware"
	"github.com/danielhkuo/pollpass/store"
	"github.com/danielhkuo/pollpass/submission"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	s := store.New(db)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(s)
	questionHandler := handlers.NewQuestionHandler(s)
	choiceHandler := handlers.NewChoiceHandler(s)
	passHandler := handlers.NewPassHandler(submission.NewService(s), cfg, m)

	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(m, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return public(middleware.RequireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler(db))

	// Polls
	mux.HandleFunc("GET /polls/{$}", public(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls/{$}", admin(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{id}/{$}", public(pollHandler.GetPoll))
	mux.HandleFunc("PUT /polls/{id}/{$}", admin(pollHandler.UpdatePoll))
	mux.HandleFunc("DELETE /polls/{id}/{$}", admin(pollHandler.DeletePoll))
	mux.HandleFunc("POST /polls/{id}/publish/{$}", admin(pollHandler.PublishPoll))

	// Passing and results (anonymous or authenticated)
	mux.HandleFunc("POST /polls/{id}/pass/{$}", public(passHandler.PassPoll))
	mux.HandleFunc("GET /polls/{id}/results/{$}", public(passHandler.GetResults))

	// Questions
	mux.HandleFunc("GET /questions/{$}", public(questionHandler.ListQuestions))
	mux.HandleFunc("POST /questions/{$}", admin(questionHandler.CreateQuestion))
	mux.HandleFunc("GET /questions/{id}/{$}", public(questionHandler.GetQuestion))
	mux.HandleFunc("PUT /questions/{id}/{$}", admin(questionHandler.UpdateQuestion))
	mux.HandleFunc("DELETE /questions/{id}/{$}", admin(questionHandler.DeleteQuestion))

	// Answer choices
	mux.HandleFunc("GET /answerchoices/{$}", public(choiceHandler.ListChoices))
	mux.HandleFunc("POST /answerchoices/{$}", admin(choiceHandler.CreateChoice))
	mux.HandleFunc("GET /answerchoices/{id}/{$}", public(choiceHandler.GetChoice))
	mux.HandleFunc("PUT /answerchoices/{id}/{$}", admin(choiceHandler.UpdateChoice))
	mux.HandleFunc("DELETE /answerchoices/{id}/{$}", admin(choiceHandler.DeleteChoice))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollpass API v1"))
	})

	return middleware.CORS(middleware.Authenticate(cfg.TokenSalt)(middleware.NormalizePath(mux)))
}
