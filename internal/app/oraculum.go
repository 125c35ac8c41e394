package app

import (
	"context"
	"fmt"
	"time"

	"github.com/janosbartek-debug/aqua-astrae/internal/domain"
	"github.com/janosbartek-debug/aqua-astrae/internal/ledger"
	"github.com/janosbartek-debug/aqua-astrae/internal/ports"
	"github.com/janosbartek-debug/aqua-astrae/internal/pricing"
	"github.com/janosbartek-debug/aqua-astrae/internal/prompt"
)

// AssumedTokens is the conservative per-call token assumption used both for
// the pre-call budget estimate and for settlement when the provider does
// not report usage, so the two stay consistent.
const AssumedTokens = 500

// modelForTier is the server-side tier-to-model mapping. Clients choose
// tiers; they never name models.
var modelForTier = map[domain.Tier]string{
	domain.TierLite:   "gpt-4o-mini",
	domain.TierMedium: "gpt-4o",
	domain.TierDeep:   "o1",
}

// ModelForTier resolves a tier to its backend model.
func ModelForTier(t domain.Tier) string {
	if m, ok := modelForTier[t]; ok {
		return m
	}
	return modelForTier[domain.TierLite]
}

// Clock supplies the current time; injectable for tests.
type Clock func() time.Time

// Reading is the application-level result of one governed provider call.
type Reading struct {
	Interpretation    string
	ModelUsed         string
	TierUsed          domain.Tier
	Tokens            *int // nil when the provider did not report usage
	CostUSD           float64
	TotalUSDThisMonth float64
	Request           domain.ReadingRequest
	LatencyMS         int64
}

// OraculumService governs reading requests: it validates and normalizes the
// payload, routes it to a tier, enforces the monthly spend cap, builds the
// prompt, invokes the provider and settles the actual cost.
type OraculumService struct {
	invoker ports.Invoker
	lore    ports.LoreStore
	ledger  ledger.Ledger
	prices  *pricing.Table
	capUSD  float64
	now     Clock
}

func NewOraculumService(invoker ports.Invoker, lore ports.LoreStore, l ledger.Ledger, prices *pricing.Table, capUSD float64, now Clock) *OraculumService {
	if now == nil {
		now = time.Now
	}
	return &OraculumService{
		invoker: invoker,
		lore:    lore,
		ledger:  l,
		prices:  prices,
		capUSD:  capUSD,
		now:     now,
	}
}

func (s *OraculumService) Read(ctx context.Context, raw domain.RawReading) (Reading, error) {
	req, err := domain.Normalize(raw)
	if err != nil {
		return Reading{}, err
	}

	tier := domain.RouteTier(req)
	model := ModelForTier(tier)

	// Budget gate: advisory pre-call estimate against the month to date.
	// The ledger resolves rollover itself, so a fresh month always starts
	// from zero here.
	snap, err := s.ledger.Current(ctx, s.now())
	if err != nil {
		return Reading{}, fmt.Errorf("read ledger: %w", err)
	}
	estimate := s.prices.Cost(AssumedTokens, model)
	if snap.SpentUSD+estimate > s.capUSD {
		return Reading{}, &domain.BudgetExceededError{CapUSD: s.capUSD, CurrentUSD: snap.SpentUSD}
	}

	p := prompt.Build(req, tier, s.lore)

	start := time.Now()
	res, err := s.invoker.Invoke(ctx, p, model)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return Reading{}, fmt.Errorf("invoke provider: %w", err)
	}

	// Settlement: commit the actual cost, falling back to the same token
	// assumption the gate used when the provider reported none.
	tokens := res.Tokens.Total
	if !res.Tokens.Known {
		tokens = AssumedTokens
	}
	usedModel := res.Model
	if usedModel == "" {
		usedModel = model
	}
	cost := s.prices.Cost(tokens, usedModel)

	total, err := s.ledger.Commit(ctx, s.now(), cost)
	if err != nil {
		return Reading{}, fmt.Errorf("commit ledger: %w", err)
	}

	var reported *int
	if res.Tokens.Known {
		reported = &res.Tokens.Total
	}

	return Reading{
		Interpretation:    res.Text,
		ModelUsed:         usedModel,
		TierUsed:          tier,
		Tokens:            reported,
		CostUSD:           cost,
		TotalUSDThisMonth: total.SpentUSD,
		Request:           req,
		LatencyMS:         latency,
	}, nil
}
