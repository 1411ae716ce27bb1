// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollpass/metrics"
	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/testutil"
)

func passRequest(pollID int64, query string, body interface{}) *http.Request {
	path := "/polls/" + itoa(pollID) + "/pass/"
	if query != "" {
		path += "?" + query
	}
	return withID(testutil.MakeRequest("POST", path, body, map[string]string{"User-Agent": "pass-test"}), pollID)
}

func TestPassPoll(t *testing.T) {
	env := newTestEnv(t)
	sp := testutil.CreateSamplePoll(t, env.db)

	w := serve(env.pass.PassPoll, passRequest(sp.Poll.ID, "auid=42", sp.ValidSubmission()))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var pp models.PassedPoll
	testutil.AssertJSON(t, w, &pp)
	assert.Equal(t, sp.Poll.ID, pp.PollID)
	require.NotNil(t, pp.AUID)
	assert.Equal(t, int64(42), *pp.AUID)
	assert.Nil(t, pp.UserID)
	assert.Len(t, pp.Answers, 4)

	var ipHash, agent string
	require.NoError(t, env.db.QueryRow(`SELECT ip_hash, user_agent FROM passed_poll WHERE id = $1`, pp.ID).Scan(&ipHash, &agent))
	assert.NotEmpty(t, ipHash)
	assert.Equal(t, "pass-test", agent)
	assert.NotContains(t, w.Body.String(), "ip_hash")

	assert.Equal(t, 1.0, prom.ToFloat64(env.metrics.Submissions.WithLabelValues(metrics.OutcomeAccepted)))
}

func TestPassPollTwice(t *testing.T) {
	env := newTestEnv(t)
	sp := testutil.CreateSamplePoll(t, env.db)

	w := serve(env.pass.PassPoll, asUser(passRequest(sp.Poll.ID, "", sp.ValidSubmission()), 9))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Second attempt fails regardless of payload
	w = serve(env.pass.PassPoll, asUser(passRequest(sp.Poll.ID, "", []models.SubmitAnswerRequest{}), 9))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "already passed", resp.Message)
	assert.Equal(t, 1.0, prom.ToFloat64(env.metrics.Submissions.WithLabelValues(metrics.OutcomeDuplicate)))

	// A negative auid names the same anonymous participant as its absolute value
	w = serve(env.pass.PassPoll, passRequest(sp.Poll.ID, "auid=9", sp.ValidSubmission()))
	testutil.AssertStatus(t, w, http.StatusCreated)
	w = serve(env.pass.PassPoll, passRequest(sp.Poll.ID, "auid=-9", sp.ValidSubmission()))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestPassPollRejections(t *testing.T) {
	env := newTestEnv(t)
	sp := testutil.CreateSamplePoll(t, env.db)
	other := testutil.CreatePoll(t, env.db, "Other", true)
	today := testutil.Today()
	expired := testutil.CreatePollWindow(t, env.db, "Expired", true, today.AddDays(-10), today.AddDays(-1))
	valid := sp.ValidSubmission()
	empty := ""

	testCases := []struct {
		name           string
		pollID         int64
		query          string
		body           interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{"no participant", sp.Poll.ID, "", valid, http.StatusBadRequest, "no participant specified"},
		{"unparseable auid and anonymous", sp.Poll.ID, "auid=abc", valid, http.StatusBadRequest, "no participant specified"},
		{"missing poll", 999, "auid=1", valid, http.StatusNotFound, "poll not found"},
		{"expired poll", expired.ID, "auid=1", []models.SubmitAnswerRequest{}, http.StatusNotFound, "poll not found"},
		{"missing question", sp.Poll.ID, "auid=1", valid[:2], http.StatusBadRequest, "missing answers to all questions"},
		{"duplicate question", sp.Poll.ID, "auid=1", append([]models.SubmitAnswerRequest{valid[0]}, valid...), http.StatusBadRequest, "duplicate question answers"},
		{"empty text", sp.Poll.ID, "auid=1", []models.SubmitAnswerRequest{{QuestionID: sp.Text.ID, AnswerText: &empty}, valid[1], valid[2]}, http.StatusBadRequest, "missing text answer"},
		{"overselected", sp.Poll.ID, "auid=1", []models.SubmitAnswerRequest{valid[0], {QuestionID: sp.Single.ID, Choices: []int64{sp.C1.ID, sp.C2.ID}}, valid[2]}, http.StatusBadRequest, "more than one choice selected"},
		{"cross question choice", sp.Poll.ID, "auid=1", []models.SubmitAnswerRequest{valid[0], {QuestionID: sp.Single.ID, Choices: []int64{sp.C3.ID}}, valid[2]}, http.StatusBadRequest, "invalid choice"},
		{"question of another poll", other.ID, "auid=1", valid[:1], http.StatusBadRequest, "invalid question"},
		{"object body", sp.Poll.ID, "auid=1", map[string]interface{}{"question": sp.Text.ID}, http.StatusBadRequest, "Invalid JSON"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(env.pass.PassPoll, passRequest(tc.pollID, tc.query, tc.body))
			testutil.AssertStatus(t, w, tc.expectedStatus)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, tc.expectedMsg, resp.Message)
		})
	}

	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM passed_poll`).Scan(&count))
	assert.Zero(t, count, "rejected submissions must not write")
}

func TestPassPollDraft(t *testing.T) {
	env := newTestEnv(t)
	draft := testutil.CreatePoll(t, env.db, "Draft", false)

	w := serve(env.pass.PassPoll, passRequest(draft.ID, "auid=1", []models.SubmitAnswerRequest{}))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetResults(t *testing.T) {
	env := newTestEnv(t)
	sp := testutil.CreateSamplePoll(t, env.db)

	w := serve(env.pass.PassPoll, passRequest(sp.Poll.ID, "auid=5", sp.ValidSubmission()))
	testutil.AssertStatus(t, w, http.StatusCreated)

	resultsReq := func(query string) *http.Request {
		return withID(testutil.MakeRequest("GET", "/polls/x/results/?"+query, nil, nil), sp.Poll.ID)
	}

	t.Run("own results", func(t *testing.T) {
		w := serve(env.pass.GetResults, resultsReq("auid=5"))
		testutil.AssertStatus(t, w, http.StatusOK)

		var view models.PassedPollView
		testutil.AssertJSON(t, w, &view)
		assert.Equal(t, sp.Poll.ID, view.Poll.ID)
		require.Len(t, view.Answers, 4)
		assert.Equal(t, "Alice", *view.Answers[0].AnswerText)
		assert.Equal(t, "Red", *view.Answers[1].Choice)
		assert.True(t, strings.HasSuffix(view.PassedAgo, "ago") || view.PassedAgo == "now")
	})

	t.Run("someone else", func(t *testing.T) {
		w := serve(env.pass.GetResults, resultsReq("auid=6"))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("no participant", func(t *testing.T) {
		w := serve(env.pass.GetResults, resultsReq(""))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unpublished hides results", func(t *testing.T) {
		_, err := env.db.Exec(`UPDATE poll SET is_published = $1 WHERE id = $2`, false, sp.Poll.ID)
		require.NoError(t, err)

		w := serve(env.pass.GetResults, resultsReq("auid=5"))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSubmissionOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeAccepted, submissionOutcome(nil))
	assert.Equal(t, metrics.OutcomeError, submissionOutcome(assert.AnError))
}
