package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
postgres:
  url: postgres://localhost:5432/site
redis:
  addr: localhost:6379
  db: 2
catalog:
  id: ai-governance
  ttl: 5m
chat:
  reload_delay: 500ms
  history_limit: 20
  rate_window: 1m
  rate_max: 10
leads:
  rate_window: 1m
  rate_max: 5
llm:
  provider: openai
  model: gpt-4o-mini
notion:
  database_id: db-from-file
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port = %q", cfg.Server.Port)
	}
	if cfg.Redis.DB != 2 {
		t.Fatalf("redis db = %d", cfg.Redis.DB)
	}
	if cfg.Chat.RateMax != 10 || cfg.Leads.RateMax != 5 {
		t.Fatalf("rate limits = %d/%d", cfg.Chat.RateMax, cfg.Leads.RateMax)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
postgres:
  url: postgres://file-host/db
notion:
  database_id: db-from-file
`)
	t.Setenv("DATABASE_URL", "postgres://env-host/db")
	t.Setenv("REDIS_ADDR", "env-redis:6379")
	t.Setenv("NOTION_DATABASE_ID", "db-from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NOTION_API_KEY", "secret-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Postgres.URL != "postgres://env-host/db" {
		t.Fatalf("postgres url = %q", cfg.Postgres.URL)
	}
	if cfg.Redis.Addr != "env-redis:6379" {
		t.Fatalf("redis addr = %q", cfg.Redis.Addr)
	}
	if cfg.Notion.DatabaseID != "db-from-env" {
		t.Fatalf("notion database = %q", cfg.Notion.DatabaseID)
	}
	if cfg.LLM.APIKey != "sk-test" || cfg.Notion.APIKey != "secret-test" {
		t.Fatal("api keys not taken from environment")
	}
}

func TestSecretsNeverReadFromFile(t *testing.T) {
	path := writeConfig(t, `
llm:
  apikey: sk-should-be-ignored
notion:
  apikey: secret-should-be-ignored
`)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("NOTION_API_KEY", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.APIKey != "" || cfg.Notion.APIKey != "" {
		t.Fatalf("api keys leaked from file: llm=%q notion=%q", cfg.LLM.APIKey, cfg.Notion.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTTLDuration(t *testing.T) {
	cases := []struct {
		raw      string
		fallback time.Duration
		want     time.Duration
	}{
		{"", time.Minute, time.Minute},
		{"5m", time.Minute, 5 * time.Minute},
		{"garbage", 30 * time.Second, 30 * time.Second},
		{"1h30m", 0, 90 * time.Minute},
	}
	for _, tc := range cases {
		if got := TTLDuration(tc.raw, tc.fallback); got != tc.want {
			t.Fatalf("TTLDuration(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
