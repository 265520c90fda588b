package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKVEntriesMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_kv_entries.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no kv_entries migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS kv_entries",
		"entry_key   TEXT PRIMARY KEY",
		"entry_value TEXT NOT NULL",
		"DROP TABLE IF EXISTS kv_entries",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
