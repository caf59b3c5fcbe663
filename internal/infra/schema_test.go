package infra

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// Router and payload ids are Go ints, so Postgres id columns must be 64-bit
// or large ids fail to encode instead of simply not matching.
func TestPostgresSchemaUsesBigintIDs(t *testing.T) {
	raw, err := schemaFS.ReadFile("schema/postgres.sql")
	if err != nil {
		t.Fatal(err)
	}

	narrow := regexp.MustCompile(`(?m)^\s*\w*id\s+(SERIAL|INT|INTEGER)\b`)
	if m := narrow.FindString(string(raw)); m != "" {
		t.Errorf("32-bit id column in postgres schema: %q", strings.TrimSpace(m))
	}
}

func TestInitSchemaRunsEveryStatement(t *testing.T) {
	db, mock := newMock(t, Postgres)

	for _, table := range []string{"media_types", "authors", "contents", "content_authors"} {
		mock.ExpectExec(q("CREATE TABLE IF NOT EXISTS " + table + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := InitSchema(context.Background(), db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
