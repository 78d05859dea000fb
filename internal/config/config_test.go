package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "REDIS_HOST", "REDIS_PORT", "CACHE_TTL",
		"ETHERSCAN_API_KEY", "ETHERS_SCAN_API_KEY", "ETHERSCAN_BASE_URL", "CHAIN_ID", "RATE_RPS", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Env != "dev" || cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected env/port: %+v", cfg)
	}
	if cfg.RedisAddr() != "localhost:6379" {
		t.Fatalf("redis addr=%s", cfg.RedisAddr())
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("cache ttl=%s", cfg.CacheTTL)
	}
	if cfg.EtherscanAPIKey != "" {
		t.Fatalf("api key should be empty, got %q", cfg.EtherscanAPIKey)
	}
	if cfg.EtherscanBaseURL != "https://api.etherscan.io" || cfg.ChainID != 1 {
		t.Fatalf("etherscan defaults: %s %d", cfg.EtherscanBaseURL, cfg.ChainID)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors=%v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_TTL", "3600")
	t.Setenv("ETHERSCAN_API_KEY", "")
	t.Setenv("ETHERS_SCAN_API_KEY", "legacy-key")
	t.Setenv("ETHERSCAN_BASE_URL", "http://explorer.local/")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("ETHERSCAN_TIMEOUT", "nonsense")

	cfg := Load()
	if cfg.RedisAddr() != "cache:6380" {
		t.Fatalf("redis addr=%s", cfg.RedisAddr())
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("bare seconds should parse, got %s", cfg.CacheTTL)
	}
	if cfg.EtherscanAPIKey != "legacy-key" {
		t.Fatalf("legacy key alias not honoured: %q", cfg.EtherscanAPIKey)
	}
	if cfg.EtherscanBaseURL != "http://explorer.local" {
		t.Fatalf("trailing slash not trimmed: %s", cfg.EtherscanBaseURL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors=%v", cfg.CORSOrigins)
	}
	if cfg.EtherscanTimeout != 10*time.Second {
		t.Fatalf("bad duration should fall back, got %s", cfg.EtherscanTimeout)
	}
}
