package database

import "testing"

func TestSQLiteRewriteQuery(t *testing.T) {
	d := NewSQLiteDialect()
	query := "SELECT * FROM trips WHERE id = ? AND owner_email = ?"
	if got := d.RewriteQuery(query); got != query {
		t.Errorf("RewriteQuery() = %q, want unchanged", got)
	}
}

func TestPostgresRewriteQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM trips WHERE id = ?",
			want:  "SELECT * FROM trips WHERE id = $1",
		},
		{
			name:  "multiple placeholders",
			query: "UPDATE invites SET is_valid = ? WHERE code = ? AND is_valid = ?",
			want:  "UPDATE invites SET is_valid = $1 WHERE code = $2 AND is_valid = $3",
		},
	}

	d := NewPostgresDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.RewriteQuery(tt.query); got != tt.want {
				t.Errorf("RewriteQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectCapabilities(t *testing.T) {
	if !NewSQLiteDialect().SupportsLastInsertId() {
		t.Error("sqlite should support LastInsertId")
	}
	if !NewMySQLDialect().SupportsLastInsertId() {
		t.Error("mysql should support LastInsertId")
	}
	if NewPostgresDialect().SupportsLastInsertId() {
		t.Error("postgres should not report LastInsertId support")
	}
}
