// Package service implements the two core operations on top of the
// variant knowledge base: per-subject variant analysis and rule-based
// recommendation synthesis.
//
// Both operations are synchronous, CPU-bound and reentrant: they read
// only their arguments and the immutable catalogue and write only newly
// allocated output. There is nothing to retry and nothing to cancel
// inside them; timeouts and retries belong to the boundary layers.
package service

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/catalog"
	"github.com/nutrigenomics-server/internal/domain"
)

const fallbackRecommendation = "No specific recommendation available for this genotype."

// Analyzer turns a genotype source into a complete, ordered finding
// list: exactly one finding per cataloged SNP, in registration order.
type Analyzer struct {
	catalog *catalog.Catalog
	log     *logrus.Logger
}

// NewAnalyzer creates an analyzer over the given catalogue.
func NewAnalyzer(cat *catalog.Catalog, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		catalog: cat,
		log:     logger,
	}
}

// AnalyzeAll produces one finding per catalogue entry, in catalogue
// order - never a subset, never duplicated. Missing or unrecognized
// genotypes yield low-risk fallback findings instead of failing.
func (a *Analyzer) AnalyzeAll(source domain.GenotypeSource) []domain.VariantFinding {
	defs := a.catalog.List()
	findings := make([]domain.VariantFinding, 0, len(defs))

	for i := range defs {
		findings = append(findings, a.analyze(&defs[i], source))
	}

	summary := domain.Summarize(findings)
	a.log.WithFields(logrus.Fields{
		"snps_analyzed": summary.Analyzed,
		"high_risk":     summary.High,
		"moderate_risk": summary.Moderate,
	}).Info("Completed full-catalogue analysis")

	return findings
}

// AnalyzeSNP analyzes a single cataloged SNP. An rsID absent from the
// catalogue fails with ErrUnknownSNP; this never happens during a full
// analysis, which only iterates cataloged rsIDs.
func (a *Analyzer) AnalyzeSNP(source domain.GenotypeSource, rsid string) (*domain.VariantFinding, error) {
	def, err := a.catalog.Lookup(rsid)
	if err != nil {
		return nil, err
	}
	finding := a.analyze(def, source)
	return &finding, nil
}

func (a *Analyzer) analyze(def *domain.SNPDefinition, source domain.GenotypeSource) domain.VariantFinding {
	finding := domain.VariantFinding{
		RSID:      def.RSID,
		Gene:      def.Gene,
		Condition: def.Condition,
		Category:  def.Category,
		Source:    def.Source,
	}

	genotype, ok := source.Genotype(def.RSID)
	if !ok || isNoCall(genotype) {
		finding.Risk = domain.RISK_LOW
		finding.Interpretation = "Genotype not available in your data file"
		finding.Recommendation = fallbackRecommendation
		finding.Unmatched = true
		return finding
	}

	finding.Genotype = &genotype

	rule, matched := a.catalog.Interpret(def, genotype)
	if !matched {
		finding.Risk = domain.RISK_LOW
		finding.Interpretation = fmt.Sprintf("Unrecognized genotype '%s' for this SNP", genotype)
		finding.Recommendation = fallbackRecommendation
		finding.Unmatched = true
		return finding
	}

	finding.Risk = rule.Risk
	finding.Interpretation = rule.Interpretation
	finding.Recommendation = rule.Recommendation
	finding.Source = rule.Source
	return finding
}

// isNoCall recognizes the placeholder values raw files use when the
// chip could not read a position.
func isNoCall(genotype string) bool {
	switch strings.TrimSpace(genotype) {
	case "", "--", "00", "NN":
		return true
	default:
		return false
	}
}

// FindingsByRisk filters a finding list to one risk level, preserving
// order.
func FindingsByRisk(findings []domain.VariantFinding, risk domain.RiskLevel) []domain.VariantFinding {
	out := make([]domain.VariantFinding, 0)
	for i := range findings {
		if findings[i].Risk == risk {
			out = append(out, findings[i])
		}
	}
	return out
}

// FindingsByCategory filters a finding list to one category, preserving
// order.
func FindingsByCategory(findings []domain.VariantFinding, category domain.Category) []domain.VariantFinding {
	out := make([]domain.VariantFinding, 0)
	for i := range findings {
		if findings[i].Category == category {
			out = append(out, findings[i])
		}
	}
	return out
}
