// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("TOKEN_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.TokenSalt != "test-salt" {
		t.Errorf("expected token salt from env, got %q", cfg.TokenSalt)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-token-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing database url", []string{"-token-salt", "s"}, nil},
		{"missing token salt", []string{"-d", "file:test.db"}, nil},
		{"bad database type", []string{"-d", "x", "-t", "mysql", "-token-salt", "s"}, nil},
		{"bad port env", []string{"-d", "x", "-token-salt", "s"}, map[string]string{"PORT": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseTokenFlags(t *testing.T) {
	os.Setenv("TOKEN_SALT", "env-salt")
	defer os.Clearenv()

	cfg, err := ParseTokenFlags([]string{"-user", "12", "-admin"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UserID != 12 || !cfg.Admin || cfg.TokenSalt != "env-salt" {
		t.Errorf("unexpected token config: %+v", cfg)
	}

	if _, err := ParseTokenFlags([]string{"-user", "0"}); err == nil {
		t.Error("expected error for non-positive user id")
	}
}
