package itctypes

import (
	"fmt"
	"strings"
)

// Kind discriminates the domain failure taxonomy. CacheBackendError and
// DecodeError are swallowed by the orchestrator (the lookup counts as a
// miss); the other kinds propagate verbatim to the GraphQL response.
// Input problems are reported through ValidationError below.
type Kind string

const (
	KindInputValidation  Kind = "input-validation"
	KindUpstreamError    Kind = "upstream-error"
	KindSourceTooBright  Kind = "source-too-bright"
	KindCalculationError Kind = "calculation-error"
	KindIntegrationTime  Kind = "integration-time-error"
	KindCacheBackend     Kind = "cache-backend-error"
	KindDecodeError      Kind = "decode-error"
)

// DomainError is the single error type every core component returns for
// a taxonomy-classified failure. It carries enough numeric context
// (HalfWellTime, AtWavelength) for the kinds that need it.
type DomainError struct {
	Kind          Kind
	Message       string
	HalfWellTime  *float64
	AtWavelength  *Wavelength
}

func (e *DomainError) Error() string {
	switch e.Kind {
	case KindSourceTooBright:
		return fmt.Sprintf("source too bright: half-well time %.4fs", *e.HalfWellTime)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func NewUpstreamError(msg string) *DomainError {
	return &DomainError{Kind: KindUpstreamError, Message: msg}
}

func NewSourceTooBright(halfWellTime float64) *DomainError {
	return &DomainError{Kind: KindSourceTooBright, HalfWellTime: &halfWellTime}
}

func NewCalculationError(msg string) *DomainError {
	return &DomainError{Kind: KindCalculationError, Message: msg}
}

func NewIntegrationTimeError(msg string) *DomainError {
	return &DomainError{Kind: KindIntegrationTime, Message: msg}
}

func NewCacheBackendError(msg string) *DomainError {
	return &DomainError{Kind: KindCacheBackend, Message: msg}
}

func NewDecodeError(msg string) *DomainError {
	return &DomainError{Kind: KindDecodeError, Message: msg}
}

// ValidationError accumulates every input-coercion problem found for
// a single request, rather than short-circuiting on the first one —
// the GraphQL response surfaces the full set of problems at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return e.Problems[0]
	}
	return fmt.Sprintf("%d validation problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}
