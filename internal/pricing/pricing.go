// Package pricing holds the per-model token rates used for budget estimates
// and settlement. Rates are configuration; the hardcoded defaults are
// conservative so a missing override can only over-estimate cost.
package pricing

// defaultPerThousandUSD maps model id to USD per 1000 tokens.
var defaultPerThousandUSD = map[string]float64{
	"gpt-4o-mini": 0.002,
	"gpt-4o":      0.01,
	"o1":          0.06,
}

// FallbackRatePerThousand is used for models absent from the table.
const FallbackRatePerThousand = 0.002

// Table resolves models to rates. Immutable after construction.
type Table struct {
	perThousand map[string]float64
}

// NewTable builds a Table from the defaults plus per-model overrides.
func NewTable(overrides map[string]float64) *Table {
	rates := make(map[string]float64, len(defaultPerThousandUSD)+len(overrides))
	for model, rate := range defaultPerThousandUSD {
		rates[model] = rate
	}
	for model, rate := range overrides {
		if rate > 0 {
			rates[model] = rate
		}
	}
	return &Table{perThousand: rates}
}

// PerThousand returns the USD rate per 1000 tokens for model.
func (t *Table) PerThousand(model string) float64 {
	if rate, ok := t.perThousand[model]; ok {
		return rate
	}
	return FallbackRatePerThousand
}

// Cost converts a token count into USD for the given model.
func (t *Table) Cost(tokens int, model string) float64 {
	return float64(tokens) / 1000 * t.PerThousand(model)
}
