package http

// ReadingResponse is the JSON shape returned by POST /v1/oraculum.
type ReadingResponse struct {
	Interpretation    string   `json:"interpretation"`
	ModelUsed         string   `json:"modelUsed"`
	TierUsed          string   `json:"tierUsed"`
	Tokens            *int     `json:"tokens"`
	CostUSD           float64  `json:"costUSD"`
	TotalUSDThisMonth float64  `json:"totalUSDThisMonth"`
	Meta              MetaResp `json:"meta"`
}

type MetaResp struct {
	SpreadType   string `json:"spreadType"`
	ReadingFocus string `json:"readingFocus"`
	Tone         string `json:"tone"`
	Depth        string `json:"depth"`
	RequestID    string `json:"request_id"`
	LatencyMS    int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	// Detail carries diagnostic information outside production mode.
	Detail string `json:"detail,omitempty"`
}

// BudgetResponse is the 429 body when the monthly cap would be exceeded.
type BudgetResponse struct {
	Error      string  `json:"error"`
	CapUSD     float64 `json:"capUSD"`
	CurrentUSD float64 `json:"currentUSD"`
}

// UpstreamErrorResponse is the 502 body for provider failures.
type UpstreamErrorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}
