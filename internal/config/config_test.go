package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MDSHELF_DATA", "MDSHELF_CONFIG", "MDSHELF_LOG_FILE", "MDSHELF_LOG_LEVEL", "MDSHELF_LOCALE"} {
		t.Setenv(key, "")
	}
	// godotenv never overrides variables that are already set, so run from
	// an empty directory to keep a developer's .env out of the tests
	t.Chdir(t.TempDir())
}

func TestDataDir(t *testing.T) {
	t.Setenv("MDSHELF_DATA", "")
	if got := DataDir(); got != DefaultDataDir {
		t.Errorf("expected %s, got %s", DefaultDataDir, got)
	}

	t.Setenv("MDSHELF_DATA", "/srv/docs")
	if got := DataDir(); got != "/srv/docs" {
		t.Errorf("expected /srv/docs, got %s", got)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing default file gives defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DataDir != DefaultDataDir {
			t.Errorf("expected data dir %s, got %s", DefaultDataDir, cfg.DataDir)
		}
		if cfg.Log.Level != DefaultLogLevel || cfg.Log.File != "" {
			t.Errorf("unexpected log config %#v", cfg.Log)
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		clearEnv(t)

		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected an error for a missing explicit config file")
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "mdshelf.yaml")
		content := "data_dir: /srv/docs\nindex_dir: /var/cache/mdshelf\nlocale: de\nwatch: true\nlog:\n  file: /tmp/mdshelf.log\n  level: debug\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DataDir != "/srv/docs" || cfg.IndexDir != "/var/cache/mdshelf" {
			t.Errorf("unexpected dirs %q %q", cfg.DataDir, cfg.IndexDir)
		}
		if cfg.Locale != "de" || !cfg.Watch {
			t.Errorf("unexpected locale/watch %q %v", cfg.Locale, cfg.Watch)
		}
		if cfg.Log.File != "/tmp/mdshelf.log" || cfg.Log.Level != "debug" {
			t.Errorf("unexpected log config %#v", cfg.Log)
		}
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "mdshelf.yaml")
		if err := os.WriteFile(path, []byte("data_dir: /srv/docs\nlocale: de\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("MDSHELF_DATA", "/env/docs")
		t.Setenv("MDSHELF_LOCALE", "fr")
		t.Setenv("MDSHELF_LOG_LEVEL", "warn")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DataDir != "/env/docs" || cfg.Locale != "fr" || cfg.Log.Level != "warn" {
			t.Errorf("expected env overrides, got %#v", cfg)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("data_dir: [unterminated"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandHome("~/docs"); got != filepath.Join(home, "docs") {
		t.Errorf("expected %s, got %s", filepath.Join(home, "docs"), got)
	}
	if got := ExpandHome("~other/docs"); got != "~other/docs" {
		t.Errorf("expected ~other/docs unchanged, got %s", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("expected /abs unchanged, got %s", got)
	}
}
