package domain

import (
	"errors"
	"fmt"
)

// Core failure taxonomy. Missing genotypes and unrecognized genotype
// strings are not errors: they are represented as low-risk findings by
// the analyzer.
var (
	// ErrUnknownSNP is returned when a requested rsID is not in the
	// catalogue. Fatal for that single lookup only; a full-catalogue
	// analysis never encounters it.
	ErrUnknownSNP = errors.New("unknown SNP")

	// ErrNoInterpretation is the sentinel for a genotype that matches
	// no rule after canonicalization.
	ErrNoInterpretation = errors.New("no interpretation for genotype")

	// ErrInvalidProfile is returned when the questionnaire payload is
	// structurally unusable. Individually missing optional fields are
	// defaulted instead.
	ErrInvalidProfile = errors.New("invalid lifestyle profile")

	// ErrNotFound is the generic persistence miss (session, findings,
	// questionnaire or recommendations absent from the store).
	ErrNotFound = errors.New("not found")
)

// UnknownSNPError wraps ErrUnknownSNP with the offending rsID.
func UnknownSNPError(rsid string) error {
	return fmt.Errorf("%w: %s", ErrUnknownSNP, rsid)
}

// APIError is the standardized error payload returned by the HTTP
// surface.
type APIError struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// API error codes.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeStorage      = "STORAGE_ERROR"
	ErrCodeAnalysis     = "ANALYSIS_ERROR"
	ErrCodeRateLimit    = "RATE_LIMIT_EXCEEDED"
	ErrCodeMealPlan     = "MEAL_PLAN_ERROR"
	ErrCodeInternal     = "INTERNAL_SERVER_ERROR"
)
