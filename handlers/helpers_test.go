// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollpass/auth"
	"github.com/danielhkuo/pollpass/metrics"
	"github.com/danielhkuo/pollpass/middleware"
	"github.com/danielhkuo/pollpass/store"
	"github.com/danielhkuo/pollpass/submission"
	"github.com/danielhkuo/pollpass/testutil"
)

type testEnv struct {
	db        *sql.DB
	store     *store.Store
	metrics   *metrics.Metrics
	polls     *PollHandler
	questions *QuestionHandler
	choices   *ChoiceHandler
	pass      *PassHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	s := store.New(conn)
	m := metrics.NewMetrics()
	return &testEnv{
		db:        conn,
		store:     s,
		metrics:   m,
		polls:     NewPollHandler(s),
		questions: NewQuestionHandler(s),
		choices:   NewChoiceHandler(s),
		pass:      NewPassHandler(submission.NewService(s), testutil.GetTestConfig(), m),
	}
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), auth.Identity{UserID: 1, IsAdmin: true}))
}

func asUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), auth.Identity{UserID: userID}))
}

func withID(req *http.Request, id int64) *http.Request {
	req.SetPathValue("id", itoa(id))
	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
