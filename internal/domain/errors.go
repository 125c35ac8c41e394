package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrForbiddenOrigin     = errors.New("origin not allowed")
	ErrMissingCredential   = errors.New("provider API key is not configured")
	ErrProviderTimeout     = errors.New("provider run did not finish in time")
	ErrProviderRunFailed   = errors.New("provider run ended in a failure state")
	ErrEmptyInterpretation = errors.New("provider returned empty interpretation")
)

// ValidationError reports every violation found in a raw request, not just
// the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Violations, "; ")
}

// BudgetExceededError rejects a request whose projected cost would push the
// month over the configured cap.
type BudgetExceededError struct {
	CapUSD     float64
	CurrentUSD float64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("monthly budget exhausted: spent %.3f of %.2f USD", e.CurrentUSD, e.CapUSD)
}

// ProviderHTTPError is a non-success status from the upstream provider.
type ProviderHTTPError struct {
	Status  int
	Details string
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Details)
}
