// Package domain contains core business entities and types for
// nutrigenomics analysis: diet-relevant SNP definitions, genotype
// interpretations, per-subject findings and the synthesized
// recommendation output.
//
// Variant interpretations reference SNPedia and the PubMed IDs listed
// per catalogue entry.
package domain

import (
	"fmt"
)

// RiskLevel represents the dietary/health significance of a genotype at
// a SNP. It is a closed tagged set, not an ordinal scale: PROTECTIVE is
// a distinct direction of effect, not a level below LOW.
type RiskLevel string

const (
	RISK_LOW        RiskLevel = "low"
	RISK_MODERATE   RiskLevel = "moderate"
	RISK_HIGH       RiskLevel = "high"
	RISK_PROTECTIVE RiskLevel = "protective"
)

// IsValid validates that the risk level belongs to the closed set.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RISK_LOW, RISK_MODERATE, RISK_HIGH, RISK_PROTECTIVE:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// Category tags group catalogue entries for informational endpoints
// (digestion, taste, metabolism, vitamins, minerals, fats, carbs,
// weight, fitness, antioxidants, detox).
type Category string

const (
	CategoryDigestion    Category = "digestion"
	CategoryTaste        Category = "taste"
	CategoryMetabolism   Category = "metabolism"
	CategoryVitamins     Category = "vitamins"
	CategoryMinerals     Category = "minerals"
	CategoryFats         Category = "fats"
	CategoryCarbs        Category = "carbs"
	CategoryWeight       Category = "weight"
	CategoryFitness      Category = "fitness"
	CategoryAntioxidants Category = "antioxidants"
	CategoryDetox        Category = "detox"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// InterpretationRule maps one canonicalized genotype of a catalogue SNP
// to its assessment. Rule bodies are copied verbatim into findings.
type InterpretationRule struct {
	Risk           RiskLevel `json:"risk"`
	Interpretation string    `json:"interpretation"`
	Recommendation string    `json:"recommendation"`
	Source         string    `json:"source"`
}

// SNPDefinition is one entry of the variant knowledge base. Definitions
// are created once at process start and never mutated; the catalogue may
// be shared across concurrent callers without locking.
//
// Interpretations is keyed by canonical genotype (alleles sorted).
// Complementary-strand encodings (A<->T, C<->G) are a different
// biological reading of the same locus, not a reordering, and appear as
// their own explicitly enumerated keys.
type SNPDefinition struct {
	RSID            string                        `json:"rsid"`
	Gene            string                        `json:"gene"`
	Condition       string                        `json:"condition"`
	Category        Category                      `json:"category"`
	Interpretations map[string]InterpretationRule `json:"-"`
	Source          string                        `json:"source"`
}

// VariantFinding is the per-SNP analysis result for one subject.
// Exactly one finding exists per catalogue entry after a full analysis,
// in catalogue registration order. Genotype is nil when the genotype
// source had no call for the SNP.
type VariantFinding struct {
	RSID           string    `json:"rsid"`
	Gene           string    `json:"gene"`
	Condition      string    `json:"condition"`
	Category       Category  `json:"category"`
	Genotype       *string   `json:"genotype"`
	Risk           RiskLevel `json:"risk_level"`
	Interpretation string    `json:"interpretation"`
	Recommendation string    `json:"recommendation"`
	Source         string    `json:"source"`

	// Unmatched marks findings whose genotype was absent or did not
	// match any rule after canonicalization. Such findings never
	// contribute to recommendation synthesis.
	Unmatched bool `json:"-"`
}

// HasGenotype reports whether the finding carries an interpreted
// genotype usable by the recommendation synthesizer.
func (f *VariantFinding) HasGenotype() bool {
	return f.Genotype != nil && !f.Unmatched
}

// GeneticBasis renders the "condition - genotype" string attached to
// recommendation items.
func (f *VariantFinding) GeneticBasis() string {
	if f.Genotype == nil {
		return f.Condition
	}
	return fmt.Sprintf("%s - %s", f.Condition, *f.Genotype)
}

// RiskSummary is the per-level histogram of a finding list. It is
// derived data: always computed from findings, never stored as an
// independent source of truth.
type RiskSummary struct {
	Analyzed   int `json:"nutrigenomics_snps_analyzed"`
	High       int `json:"high_risk"`
	Moderate   int `json:"moderate_risk"`
	Low        int `json:"low_risk"`
	Protective int `json:"protective"`
}

// Summarize computes the risk histogram for a finding list.
func Summarize(findings []VariantFinding) RiskSummary {
	s := RiskSummary{Analyzed: len(findings)}
	for i := range findings {
		switch findings[i].Risk {
		case RISK_HIGH:
			s.High++
		case RISK_MODERATE:
			s.Moderate++
		case RISK_LOW:
			s.Low++
		case RISK_PROTECTIVE:
			s.Protective++
		}
	}
	return s
}

// RecommendationItem is a single piece of synthesized advice tied to a
// genetic finding.
type RecommendationItem struct {
	Category         string `json:"category"`
	GeneticBasis     string `json:"genetic_basis"`
	Recommendation   string `json:"recommendation"`
	PersonalizedNote string `json:"personalized_note,omitempty"`
	Urgent           bool   `json:"urgent,omitempty"`
}

// RecommendationBundle is the prioritized, deduplicated advice output
// for one subject. All slices preserve catalogue registration order;
// the three food/supplement collections are deduplicated keeping the
// first occurrence.
type RecommendationBundle struct {
	HighPriority          []RecommendationItem `json:"high_priority"`
	ModeratePriority      []RecommendationItem `json:"moderate_priority"`
	GeneralAdvice         []RecommendationItem `json:"general_advice"`
	FoodsToIncrease       []string             `json:"foods_to_increase"`
	FoodsToLimit          []string             `json:"foods_to_limit"`
	SupplementsToConsider []string             `json:"supplements_to_consider"`
}

// NewRecommendationBundle returns a bundle with all collections
// allocated, so serialized output carries empty arrays rather than
// nulls.
func NewRecommendationBundle() *RecommendationBundle {
	return &RecommendationBundle{
		HighPriority:          []RecommendationItem{},
		ModeratePriority:      []RecommendationItem{},
		GeneralAdvice:         []RecommendationItem{},
		FoodsToIncrease:       []string{},
		FoodsToLimit:          []string{},
		SupplementsToConsider: []string{},
	}
}
