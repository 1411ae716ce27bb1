// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - TokenSalt: Secret for bearer token HMAC and IP hashing (required)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--token-salt  Bearer token salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	TOKEN_SALT    → --token-salt

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing, if one exists.

# Token Subcommand

ParseTokenFlags parses the arguments of the token subcommand, which prints a
bearer token for a user id:

	pollpass token -user 1 -admin
*/
package cliparse
