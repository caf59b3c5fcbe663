package infra

import (
	"strings"
	"testing"

	"github.com/Vovarama1992/voci-api/internal/config"
)

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.DatabaseConfig{
		Host: "db", Port: 3306, Name: "voci_db", User: "root", Pass: "p@ss",
	})

	for _, want := range []string{"root:p@ss@tcp(db:3306)/voci_db", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestPostgresURL(t *testing.T) {
	got := postgresURL(config.DatabaseConfig{
		Host: "db", Port: 5432, Name: "voci_db", User: "app", Pass: "s/cret",
	})
	want := "postgres://app:s%2Fcret@db:5432/voci_db"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
