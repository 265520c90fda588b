package db

import (
	"context"
	"testing"

	"github.com/angelmondragon/mallkv/pkg/config"
	"gorm.io/driver/sqlite"
)

func TestOpenSQLiteAndPing(t *testing.T) {
	client, err := Open(sqlite.Open("file:db_client_test?mode=memory&cache=shared"), config.DriverSQLite)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if client.Driver() != config.DriverSQLite {
		t.Fatalf("unexpected driver %q", client.Driver())
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{Driver: config.DriverSQLite}, nil); err == nil {
		t.Fatal("expected error without dsn")
	}
}

func TestDialectorForRejectsUnknownDriver(t *testing.T) {
	if _, err := dialectorFor(config.DBConfig{Driver: "mysql", DSN: "x"}); err == nil {
		t.Fatal("expected unsupported driver error")
	}
	d, err := dialectorFor(config.DBConfig{Driver: config.DriverPostgres, DSN: "postgres://localhost/mall"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name() != "postgres" {
		t.Fatalf("expected postgres dialector, got %q", d.Name())
	}
}
