package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"agoda_hotel/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	for _, k := range []string{"APP_ENV", "CATALOG_ARCHIVE", "HTTP_ADDR", "REDIS_ADDR", "CACHE_TTL_SECONDS", "RATE_LIMIT_RPS"} {
		t.Setenv(k, "")
	}

	c := shared.Load()
	if c.AppEnv != "prod" || c.HTTPAddr != ":8080" || c.RedisAddr != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL != 900*time.Second || c.RateLimitRPS != 50 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_EnvAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	dotenv := "CATALOG_ARCHIVE=/data/agoda.zip\nHTTP_ADDR=:9999\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("RATE_LIMIT_RPS", "nope")
	t.Setenv("CATALOG_ARCHIVE", "")
	os.Unsetenv("CATALOG_ARCHIVE")

	c := shared.Load()
	if c.ArchivePath != "/data/agoda.zip" {
		t.Fatalf("archive from .env: %q", c.ArchivePath)
	}
	if c.HTTPAddr != ":7000" {
		t.Fatalf("environment should win over .env: %q", c.HTTPAddr)
	}
	if c.CacheTTL != time.Minute || c.RateLimitRPS != 50 {
		t.Fatalf("ttl=%s rps=%d", c.CacheTTL, c.RateLimitRPS)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
