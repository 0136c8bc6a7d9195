package database

import (
	"testing"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		databaseType string
		driver       string
		wantErr      bool
	}{
		{"", "sqlite3", false},
		{"sqlite", "sqlite3", false},
		{"SQLite3", "sqlite3", false},
		{"postgres", "postgres", false},
		{"postgresql", "postgres", false},
		{"mysql", "mysql", false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.databaseType, func(t *testing.T) {
			dialect, err := DialectFor(tt.databaseType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DialectFor(%q) expected error", tt.databaseType)
				}
				return
			}
			if err != nil {
				t.Fatalf("DialectFor(%q) unexpected error: %v", tt.databaseType, err)
			}
			if dialect.DriverName() != tt.driver {
				t.Errorf("DriverName() = %v, want %v", dialect.DriverName(), tt.driver)
			}
			if dialect.MigrationsSubdir() == "" {
				t.Error("MigrationsSubdir() should not be empty")
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM players WHERE id = ?",
			expected: "SELECT * FROM players WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM players WHERE id = ?",
			expected: "SELECT * FROM players WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO players (id, name) VALUES (?, ?)",
			expected: "INSERT INTO players (id, name) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE score_streaks SET score = ?, streak = ? WHERE player_id = ?",
			expected: "UPDATE score_streaks SET score = ?, streak = ? WHERE player_id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsertQuery(t *testing.T) {
	columns := []string{"player_id", "settings", "updated_at"}

	tests := []struct {
		name     string
		dialect  Dialect
		expected string
	}{
		{
			name:    "SQLite",
			dialect: NewSQLiteDialect(),
			expected: "INSERT INTO game_settings (player_id, settings, updated_at) VALUES (?, ?, ?) " +
				"ON CONFLICT (player_id) DO UPDATE SET settings = excluded.settings, updated_at = excluded.updated_at",
		},
		{
			name:    "PostgreSQL",
			dialect: NewPostgresDialect(),
			expected: "INSERT INTO game_settings (player_id, settings, updated_at) VALUES (?, ?, ?) " +
				"ON CONFLICT (player_id) DO UPDATE SET settings = excluded.settings, updated_at = excluded.updated_at",
		},
		{
			name:    "MySQL",
			dialect: NewMySQLDialect(),
			expected: "INSERT INTO game_settings (player_id, settings, updated_at) VALUES (?, ?, ?) " +
				"ON DUPLICATE KEY UPDATE settings = VALUES(settings), updated_at = VALUES(updated_at)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.UpsertQuery("game_settings", "player_id", columns)
			if result != tt.expected {
				t.Errorf("UpsertQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMySQLDSNParsesTime(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"user:pass@tcp(db:3306)/tinywords", "user:pass@tcp(db:3306)/tinywords?parseTime=true"},
		{"user:pass@tcp(db:3306)/tinywords?charset=utf8mb4", "user:pass@tcp(db:3306)/tinywords?charset=utf8mb4&parseTime=true"},
		{"user:pass@tcp(db:3306)/tinywords?parseTime=false", "user:pass@tcp(db:3306)/tinywords?parseTime=false"},
	}

	for _, tt := range tests {
		result := NewMySQLDialect().DSN(DialectConfig{URL: tt.url})
		if result != tt.expected {
			t.Errorf("DSN(%q) = %v, want %v", tt.url, result, tt.expected)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	content := `-- comment
CREATE TABLE a (
    id INTEGER
);

CREATE INDEX idx_a ON a(id);
SELECT 1`

	stmts := splitStatements(content)
	if len(stmts) != 3 {
		t.Fatalf("splitStatements() returned %d statements, want 3: %q", len(stmts), stmts)
	}
	if stmts[1] != "CREATE INDEX idx_a ON a(id);" {
		t.Errorf("second statement = %q", stmts[1])
	}
	if stmts[2] != "SELECT 1" {
		t.Errorf("trailing statement = %q", stmts[2])
	}
}

func TestSQLiteDSNAddsPragmas(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"./tinywords.db", "./tinywords.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"},
		{"file:test.db?cache=shared", "file:test.db?cache=shared&_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"},
	}

	for _, tt := range tests {
		if got := NewSQLiteDialect().DSN(DialectConfig{Path: tt.path}); got != tt.expected {
			t.Errorf("DSN(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}
