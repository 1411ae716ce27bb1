// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollpass API.

# Route Registration

NewRouter wires the store, submission service and handlers into an
http.Handler:

	h := router.NewRouter(db, cfg, metrics.NewMetrics())

The returned handler applies, outermost first: CORS, bearer token
authentication, and path normalization. Every API route is wrapped with
request logging and metrics.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Polls (writes require an admin token):

	GET    /polls/              - List visible polls
	POST   /polls/              - Create poll
	GET    /polls/{id}/         - Poll with questions and choices
	PUT    /polls/{id}/         - Update name and finish date
	DELETE /polls/{id}/         - Delete poll
	POST   /polls/{id}/publish/ - Publish poll

Passing (anonymous with ?auid= or authenticated):

	POST /polls/{id}/pass/    - Submit answers
	GET  /polls/{id}/results/ - Caller's submitted answers

Questions and answer choices:

	GET|POST        /questions/
	GET|PUT|DELETE  /questions/{id}/
	GET|POST        /answerchoices/
	GET|PUT|DELETE  /answerchoices/{id}/

Collection and item paths also accept a missing trailing slash and a ".json"
suffix, e.g. /polls/1.json.
*/
package router
