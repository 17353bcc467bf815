package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-backed service configuration. Secrets (API keys)
// are never read from the file: they come from the environment only.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Catalog struct {
		ID  string `yaml:"id"`
		TTL string `yaml:"ttl"`
	} `yaml:"catalog"`
	Chat struct {
		ReloadDelay  string `yaml:"reload_delay"`
		HistoryLimit int    `yaml:"history_limit"`
		RateWindow   string `yaml:"rate_window"`
		RateMax      int    `yaml:"rate_max"`
	} `yaml:"chat"`
	Leads struct {
		RateWindow string `yaml:"rate_window"`
		RateMax    int    `yaml:"rate_max"`
	} `yaml:"leads"`
	LLM struct {
		Provider string `yaml:"provider"` // "openai" or "canned"
		Model    string `yaml:"model"`
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"-"`
	} `yaml:"llm"`
	Notion struct {
		DatabaseID string `yaml:"database_id"`
		APIKey     string `yaml:"-"`
	} `yaml:"notion"`
}

// Load reads YAML config from path and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Postgres.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("NOTION_DATABASE_ID"); v != "" {
		c.Notion.DatabaseID = v
	}
	c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	c.Notion.APIKey = os.Getenv("NOTION_API_KEY")
}

// TTLDuration parses a duration string or returns the fallback if empty
// or malformed.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
