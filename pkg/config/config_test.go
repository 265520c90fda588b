package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to be dev, got %q", cfg.App.Env)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Fatalf("expected memory backend by default, got %q", cfg.Storage.Backend)
	}
	if cfg.Coupon.MinPercent != 3 || cfg.Coupon.MaxPercent != 15 {
		t.Fatalf("unexpected coupon range [%d, %d]", cfg.Coupon.MinPercent, cfg.Coupon.MaxPercent)
	}
	if cfg.Seed.AdminEmail != "admin@mall.com" {
		t.Fatalf("unexpected seed admin email %q", cfg.Seed.AdminEmail)
	}
	if cfg.Redis.DialTimeout != 5*time.Second {
		t.Fatalf("expected redis dial timeout 5s, got %v", cfg.Redis.DialTimeout)
	}
	if cfg.Orders.RecentWindow != 5 {
		t.Fatalf("expected recent window 5, got %d", cfg.Orders.RecentWindow)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_SQLBackendRequiresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageBackend, BackendSQL)

	if _, err := Load(); err == nil {
		t.Fatal("expected sql backend without dsn to fail")
	}

	t.Setenv(EnvDBDSN, "file:mall.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver default, got %q", cfg.DB.Driver)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageBackend, "etcd")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown backend to fail")
	}
}

func TestLoad_RejectsInvertedCouponRange(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCouponMinPercent, "20")
	t.Setenv(EnvCouponMaxPercent, "10")

	if _, err := Load(); err == nil {
		t.Fatal("expected inverted coupon range to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
	for _, key := range []string{EnvStorageBackend, EnvDBDSN, EnvDBDriver, EnvCouponMinPercent, EnvCouponMaxPercent, EnvOrdersRecentWindow} {
		unsetEnv(t, key)
	}
}

// unsetEnv clears key for the test and restores it afterwards. envconfig
// treats a present-but-empty variable as set, so defaults only apply when the
// variable is absent.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
