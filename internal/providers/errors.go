package providers

import (
	"fmt"
	"strings"
)

type FailureKind string

const (
	FailureOverloaded  FailureKind = "overloaded"
	FailureRateLimited FailureKind = "rate_limited"
	FailureQuota       FailureKind = "quota_exceeded"
	FailureTimeout     FailureKind = "timeout"
	FailureUnknown     FailureKind = "unknown"
)

// ProviderError wraps a backend failure with its classified kind.
type ProviderError struct {
	Kind FailureKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider failure (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Classify maps a raw backend error onto the failure taxonomy by inspecting
// its text. Neither backend guarantees stable error messages, so this is
// best-effort pattern matching, not a contract.
func Classify(err error) FailureKind {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "quota"), strings.Contains(e, "credit"), strings.Contains(e, "insufficient_quota"):
		return FailureQuota
	case strings.Contains(e, "rate limit"), strings.Contains(e, "429"), strings.Contains(e, "too many requests"):
		return FailureRateLimited
	case strings.Contains(e, "timeout"), strings.Contains(e, "deadline exceeded"):
		return FailureTimeout
	case strings.Contains(e, "overloaded"), strings.Contains(e, "503"), strings.Contains(e, "unavailable"), strings.Contains(e, "temporarily"):
		return FailureOverloaded
	default:
		return FailureUnknown
	}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Kind: Classify(err), Err: err}
}
