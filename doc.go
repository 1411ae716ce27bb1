// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollpass API server.

pollpass serves polls made of free-text, single-choice and multiple-choice
questions. Administrators build and publish polls; participants pass each
published poll once, anonymously with an ?auid= query parameter or as an
authenticated user, and can read back what they answered.

# Starting the Server

Settings come from CLI flags, environment variables, or a .env file:

	TOKEN_SALT=... DATABASE_URL=pollpass.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - TOKEN_SALT (-token-salt): Secret for bearer token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Tokens

The token subcommand prints a bearer token for a user:

	go run . token -user 1 -admin

Send it as "Authorization: Bearer <token>".

# Architecture

  - handlers: HTTP request handlers (polls, questions, choices, passing)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, auth, path normalization, logging, metrics, JSON helpers
  - submission: Answer validation, submission and results
  - policy: Visibility and participant resolution
  - store: SQL repository
  - models: Domain and request/response types
  - metrics: Prometheus collectors
  - auth: Token generation and validation
  - db: Connections and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
