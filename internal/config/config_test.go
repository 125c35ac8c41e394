package config

import (
	"math"
	"testing"
)

func TestParsePriceOverrides(t *testing.T) {
	environ := []string{
		"PRICE_GPT_4O_MINI=0.003",
		"PRICE_O1=0.08",
		"PRICE_BROKEN=not-a-number",
		"PRICE_NEGATIVE=-1",
		"UNRELATED=5",
	}

	got := parsePriceOverrides(environ)

	if len(got) != 2 {
		t.Fatalf("expected 2 overrides, got %v", got)
	}
	if math.Abs(got["gpt-4o-mini"]-0.003) > 1e-9 {
		t.Errorf("gpt-4o-mini = %v", got["gpt-4o-mini"])
	}
	if math.Abs(got["o1"]-0.08) > 1e-9 {
		t.Errorf("o1 = %v", got["o1"])
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MonthlyCapUSD != DefaultMonthlyCapUSD {
		t.Errorf("cap = %v", cfg.MonthlyCapUSD)
	}
	if cfg.HTTPAddr == "" || cfg.OpenAIBaseURL == "" {
		t.Errorf("missing defaults: %+v", cfg)
	}
}

func TestLoad_InvalidCap(t *testing.T) {
	t.Setenv("MONTHLY_CAP_USD", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid cap")
	}
}

func TestLoad_CapOverride(t *testing.T) {
	t.Setenv("MONTHLY_CAP_USD", "12.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MonthlyCapUSD != 12.5 {
		t.Errorf("cap = %v", cfg.MonthlyCapUSD)
	}
}
