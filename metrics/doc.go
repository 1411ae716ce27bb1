// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus metrics for the API.

	m := metrics.NewMetrics()
	mux.Handle("GET /metrics", m.Handler(conn))

Collected series:

  - pollpass_http_requests_total{route,method,status}
  - pollpass_http_request_duration_seconds{route,method}
  - pollpass_http_requests_in_flight
  - pollpass_submissions_total{outcome}
  - pollpass_db_connection_pool{stat}

Routes are labelled with their mux pattern, never the raw path, so poll ids
do not create new series.
*/
package metrics
