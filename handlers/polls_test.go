// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/testutil"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestCreatePoll(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid poll",
			body:           map[string]interface{}{"name": "Lunch", "start_date": "2024-05-01", "finish_date": "2024-05-31"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "same start and finish",
			body:           map[string]interface{}{"name": "One day", "start_date": "2024-05-01", "finish_date": "2024-05-01", "is_published": true},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "start after finish",
			body:           map[string]interface{}{"name": "Backwards", "start_date": "2024-06-01", "finish_date": "2024-05-01"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "start date is after finish date",
		},
		{
			name:           "missing name",
			body:           map[string]interface{}{"start_date": "2024-05-01", "finish_date": "2024-05-31"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "name is required",
		},
		{
			name:           "missing finish date",
			body:           map[string]interface{}{"name": "Open ended", "start_date": "2024-05-01"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "finish_date is required",
		},
		{
			name:           "name too long",
			body:           map[string]interface{}{"name": strings.Repeat("a", 101), "start_date": "2024-05-01", "finish_date": "2024-05-31"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "name must be at most 100 characters",
		},
		{
			name:           "malformed date",
			body:           map[string]interface{}{"name": "Bad", "start_date": "May 1", "finish_date": "2024-05-31"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid JSON",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := asAdmin(testutil.MakeRequest("POST", "/polls/", tc.body, nil))
			w := serve(env.polls.CreatePoll, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedMsg != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				assert.Equal(t, tc.expectedMsg, resp.Message)
			}
		})
	}
}

func TestListPollsVisibility(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreatePoll(t, env.db, "Draft", false)
	published := testutil.CreatePoll(t, env.db, "Published", true)

	t.Run("admin sees all", func(t *testing.T) {
		w := serve(env.polls.ListPolls, asAdmin(testutil.MakeRequest("GET", "/polls/", nil, nil)))
		testutil.AssertStatus(t, w, http.StatusOK)

		var polls []models.Poll
		testutil.AssertJSON(t, w, &polls)
		require.Len(t, polls, 2)
		assert.False(t, polls[0].IsPublished, "unpublished polls list first")
	})

	for name, req := range map[string]*http.Request{
		"anonymous": testutil.MakeRequest("GET", "/polls/", nil, nil),
		"user":      asUser(testutil.MakeRequest("GET", "/polls/", nil, nil), 5),
	} {
		t.Run(name+" sees published", func(t *testing.T) {
			w := serve(env.polls.ListPolls, req)
			testutil.AssertStatus(t, w, http.StatusOK)

			var polls []models.Poll
			testutil.AssertJSON(t, w, &polls)
			require.Len(t, polls, 1)
			assert.Equal(t, published.ID, polls[0].ID)
		})
	}
}

func TestGetPoll(t *testing.T) {
	env := newTestEnv(t)
	sp := testutil.CreateSamplePoll(t, env.db)
	draft := testutil.CreatePoll(t, env.db, "Draft", false)

	t.Run("published with nested questions", func(t *testing.T) {
		w := serve(env.polls.GetPoll, withID(testutil.MakeRequest("GET", "/polls/x/", nil, nil), sp.Poll.ID))
		testutil.AssertStatus(t, w, http.StatusOK)

		var detail models.PollDetail
		testutil.AssertJSON(t, w, &detail)
		assert.Equal(t, "Sample Poll", detail.Name)
		require.Len(t, detail.Questions, 3)
		assert.Len(t, detail.Questions[2].Choices, 3)
	})

	t.Run("draft hidden from non-admin", func(t *testing.T) {
		w := serve(env.polls.GetPoll, withID(testutil.MakeRequest("GET", "/polls/x/", nil, nil), draft.ID))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("draft visible to admin", func(t *testing.T) {
		w := serve(env.polls.GetPoll, asAdmin(withID(testutil.MakeRequest("GET", "/polls/x/", nil, nil), draft.ID)))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("missing", func(t *testing.T) {
		w := serve(env.polls.GetPoll, asAdmin(withID(testutil.MakeRequest("GET", "/polls/x/", nil, nil), 999)))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("non numeric id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/abc/", nil, nil)
		req.SetPathValue("id", "abc")
		testutil.AssertStatus(t, serve(env.polls.GetPoll, req), http.StatusNotFound)
	})
}

func TestUpdatePoll(t *testing.T) {
	env := newTestEnv(t)
	start, _ := models.ParseDate("2024-05-10")
	finish, _ := models.ParseDate("2024-05-20")
	p := testutil.CreatePollWindow(t, env.db, "Original", false, start, finish)

	t.Run("start date and published flag ignored", func(t *testing.T) {
		body := map[string]interface{}{
			"name": "Renamed", "start_date": "2020-01-01", "finish_date": "2024-06-01", "is_published": true,
		}
		w := serve(env.polls.UpdatePoll, asAdmin(withID(testutil.MakeRequest("PUT", "/polls/x/", body, nil), p.ID)))
		testutil.AssertStatus(t, w, http.StatusOK)

		var detail models.PollDetail
		testutil.AssertJSON(t, w, &detail)
		assert.Equal(t, "Renamed", detail.Name)
		assert.Equal(t, "2024-05-10", detail.StartDate.String())
		assert.Equal(t, "2024-06-01", detail.FinishDate.String())
		assert.False(t, detail.IsPublished)
	})

	t.Run("finish before stored start", func(t *testing.T) {
		body := map[string]interface{}{"name": "Renamed", "finish_date": "2024-05-09"}
		w := serve(env.polls.UpdatePoll, asAdmin(withID(testutil.MakeRequest("PUT", "/polls/x/", body, nil), p.ID)))
		testutil.AssertStatus(t, w, http.StatusBadRequest)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, "start date is after finish date", resp.Message)
	})

	t.Run("missing poll", func(t *testing.T) {
		body := map[string]interface{}{"name": "Renamed", "finish_date": "2024-06-01"}
		w := serve(env.polls.UpdatePoll, asAdmin(withID(testutil.MakeRequest("PUT", "/polls/x/", body, nil), 999)))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestPublishPoll(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.CreatePoll(t, env.db, "Draft", false)

	w := serve(env.polls.PublishPoll, asAdmin(withID(testutil.MakeRequest("POST", "/polls/x/publish/", nil, nil), p.ID)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PublishPollResponse
	testutil.AssertJSON(t, w, &resp)
	assert.True(t, resp.IsPublished)

	// Second publish fails
	w = serve(env.polls.PublishPoll, asAdmin(withID(testutil.MakeRequest("POST", "/polls/x/publish/", nil, nil), p.ID)))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	assert.Equal(t, "poll already published", errResp.Message)

	w = serve(env.polls.PublishPoll, asAdmin(withID(testutil.MakeRequest("POST", "/polls/x/publish/", nil, nil), 999)))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeletePoll(t *testing.T) {
	env := newTestEnv(t)
	sp := testutil.CreateSamplePoll(t, env.db)

	w := serve(env.polls.DeletePoll, asAdmin(withID(testutil.MakeRequest("DELETE", "/polls/x/", nil, nil), sp.Poll.ID)))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = serve(env.questions.GetQuestion, asAdmin(withID(testutil.MakeRequest("GET", "/questions/x/", nil, nil), sp.Text.ID)))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = serve(env.polls.DeletePoll, asAdmin(withID(testutil.MakeRequest("DELETE", "/polls/x/", nil, nil), sp.Poll.ID)))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
