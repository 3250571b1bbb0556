package models

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// dryRunDB builds statements against the MySQL dialect without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "bot:bot@tcp(127.0.0.1:3306)/bot?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

// A freshly registered user has never claimed the chance circle or filed
// a ticket. The INSERT must not bind the Go zero time for either column:
// MySQL's DATETIME floor is 1000-01-01 and strict mode rejects anything
// below it with error 1292.
func TestNewUserInsertStaysInDatetimeRange(t *testing.T) {
	db := dryRunDB(t)

	user := &User{
		NumID:     777,
		Username:  "someone",
		FirstName: "Some",
		JoinDate:  time.Now().UTC(),
	}
	stmt := db.Create(user).Statement
	if !strings.Contains(stmt.SQL.String(), "INSERT") {
		t.Fatalf("expected an INSERT, got %q", stmt.SQL.String())
	}

	for _, v := range stmt.Vars {
		ts, ok := v.(time.Time)
		if !ok {
			continue
		}
		if ts.Year() < 1000 {
			t.Fatalf("INSERT binds out-of-range timestamp %s", ts)
		}
	}
}
