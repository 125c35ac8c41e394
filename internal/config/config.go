package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultMonthlyCapUSD is the conservative spend ceiling used when
// MONTHLY_CAP_USD is unset.
const DefaultMonthlyCapUSD = 5.0

type Config struct {
	HTTPAddr      string
	LogLevel      slog.Level
	Production    bool
	OpenAIAPIKey  string
	OpenAIBaseURL string
	// AssistantID enables the stateful assistant protocol. Empty means the
	// completion protocol is always used.
	AssistantID    string
	AllowedOrigin  string
	MonthlyCapUSD  float64
	PriceOverrides map[string]float64
	// LedgerPath is the SQLite ledger file; empty selects the in-memory
	// ledger.
	LedgerPath string
	LLMTimeout time.Duration
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		Production:     envOr("APP_ENV", "development") == "production",
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AssistantID:    os.Getenv("ORACULUM_ASSISTANT_ID"),
		AllowedOrigin:  envOr("ALLOWED_ORIGIN", "https://aqua-astrae.vercel.app"),
		MonthlyCapUSD:  DefaultMonthlyCapUSD,
		PriceOverrides: parsePriceOverrides(os.Environ()),
		LedgerPath:     os.Getenv("LEDGER_PATH"),
		LLMTimeout:     90 * time.Second,
	}

	if v := os.Getenv("MONTHLY_CAP_USD"); v != "" {
		cap, err := strconv.ParseFloat(v, 64)
		if err != nil || cap <= 0 {
			return Config{}, fmt.Errorf("invalid MONTHLY_CAP_USD %q", v)
		}
		c.MonthlyCapUSD = cap
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

// parsePriceOverrides reads PRICE_<MODEL>=<usd-per-1000-tokens> variables.
// The model id is derived by lowercasing and mapping underscores to
// hyphens, so PRICE_GPT_4O_MINI=0.002 overrides gpt-4o-mini. Unparseable
// values are skipped rather than fatal; the hardcoded defaults still apply.
func parsePriceOverrides(environ []string) map[string]float64 {
	overrides := make(map[string]float64)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, "PRICE_") {
			continue
		}
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			continue
		}
		model := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, "PRICE_")), "_", "-")
		overrides[model] = rate
	}
	return overrides
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
