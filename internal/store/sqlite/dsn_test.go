package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "memory", input: "sqlite://:memory:", expected: ":memory:"},
		{name: "absolute", input: "sqlite:///var/lib/itempatch.db", expected: "/var/lib/itempatch.db"},
		{name: "relative", input: "sqlite://assets/itempatch.db", expected: "./assets/itempatch.db"},
		{name: "dot relative", input: "sqlite://./itempatch.db", expected: "./itempatch.db"},
		{name: "query kept", input: "sqlite://assets/itempatch.db?mode=ro", expected: "./assets/itempatch.db?mode=ro"},
		{name: "escaped path", input: "sqlite://my%20assets/itempatch.db", expected: "./my assets/itempatch.db"},
		{name: "wrong scheme", input: "postgres://localhost/db", wantErr: true},
		{name: "empty path", input: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDSN(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDSN(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDSN(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("parseDSN(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("-- comment\nCREATE TABLE a (x INTEGER);\n\nCREATE TABLE b (y INTEGER);\n")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %#v", len(stmts), stmts)
	}
}
