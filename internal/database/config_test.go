package database

import "testing"

func TestNewConfig(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_USER", "u")
		t.Setenv("DB_PASSWORD", "p")
		t.Setenv("DB_NAME", "ledger")
		t.Setenv("DB_SSLMODE", "require")

		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "host=db port=5433 user=u password=p dbname=ledger sslmode=require"; cfg.DSN() != want {
			t.Errorf("DSN = %q, want %q", cfg.DSN(), want)
		}
		if want := "postgres://u:p@db:5433/ledger?sslmode=require"; cfg.MigrateURL() != want {
			t.Errorf("MigrateURL = %q, want %q", cfg.MigrateURL(), want)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("SQLITE_PATH", "/tmp/ledger.db")

		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DSN() != "/tmp/ledger.db" {
			t.Errorf("unexpected DSN %q", cfg.DSN())
		}
		if cfg.MigrateURL() != "sqlite3:///tmp/ledger.db" {
			t.Errorf("unexpected migrate URL %q", cfg.MigrateURL())
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		if _, err := NewConfig(); err == nil {
			t.Error("expected error for unsupported driver")
		}
	})
}
