// Package catalog implements the variant knowledge base: the read-only
// registry of diet-relevant SNP definitions and their genotype
// interpretation rules.
//
// The catalogue is initialized once at process start and is safe to
// share across concurrent callers without locking. Iteration always
// follows registration order; every downstream ordering (finding lists,
// recommendation buckets) derives from it.
package catalog

import (
	"sort"
	"strings"

	"github.com/nutrigenomics-server/internal/domain"
)

// Catalog is the authoritative registry of SNP definitions.
type Catalog struct {
	defs   []domain.SNPDefinition
	byRSID map[string]int
}

// New builds the catalogue from the built-in definition table.
func New() *Catalog {
	return newFromDefinitions(definitions())
}

func newFromDefinitions(defs []domain.SNPDefinition) *Catalog {
	c := &Catalog{
		defs:   make([]domain.SNPDefinition, 0, len(defs)),
		byRSID: make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		c.register(def)
	}
	return c
}

// register adds a definition, canonicalizing every rule key and filling
// per-rule sources from the definition-level citation.
func (c *Catalog) register(def domain.SNPDefinition) {
	canonical := make(map[string]domain.InterpretationRule, len(def.Interpretations))
	for genotype, rule := range def.Interpretations {
		if rule.Source == "" {
			rule.Source = def.Source
		}
		canonical[CanonicalGenotype(genotype)] = rule
	}
	def.Interpretations = canonical

	c.byRSID[def.RSID] = len(c.defs)
	c.defs = append(c.defs, def)
}

// CanonicalGenotype normalizes a genotype string for rule lookup:
// uppercase, alleles sorted. Heterozygous calls may arrive with either
// allele order ("CT" vs "TC") and must match the same rule.
// Complementary-strand encodings are NOT derived here; they are
// separate keys in the rule maps.
func CanonicalGenotype(genotype string) string {
	alleles := strings.Split(strings.ToUpper(strings.TrimSpace(genotype)), "")
	sort.Strings(alleles)
	return strings.Join(alleles, "")
}

// Size returns the number of cataloged SNPs.
func (c *Catalog) Size() int {
	return len(c.defs)
}

// Lookup returns the definition for an rsID, or ErrUnknownSNP.
func (c *Catalog) Lookup(rsid string) (*domain.SNPDefinition, error) {
	idx, ok := c.byRSID[rsid]
	if !ok {
		return nil, domain.UnknownSNPError(rsid)
	}
	return &c.defs[idx], nil
}

// List returns the catalogue in registration order. The returned slice
// is shared; callers must not mutate it.
func (c *Catalog) List() []domain.SNPDefinition {
	return c.defs
}

// RSIDs returns every cataloged rsID in registration order. Parsers use
// it to discard the bulk of an uploaded file early.
func (c *Catalog) RSIDs() []string {
	ids := make([]string, len(c.defs))
	for i, def := range c.defs {
		ids[i] = def.RSID
	}
	return ids
}

// Interpret resolves the rule for an observed genotype after
// canonicalization. The second return is false when no rule covers the
// genotype; the analyzer then falls back to an "unrecognized" finding.
func (c *Catalog) Interpret(def *domain.SNPDefinition, genotype string) (domain.InterpretationRule, bool) {
	rule, ok := def.Interpretations[CanonicalGenotype(genotype)]
	return rule, ok
}

// CategoryGroup is one category bucket of the catalogue export.
type CategoryGroup struct {
	Category domain.Category        `json:"category"`
	Count    int                    `json:"count"`
	SNPs     []domain.SNPDefinition `json:"snps"`
}

// CategoryGroups returns the catalogue grouped by category for
// informational endpoints. Groups appear in order of first registration,
// entries in registration order within each group.
func (c *Catalog) CategoryGroups() []CategoryGroup {
	order := make([]domain.Category, 0)
	groups := make(map[domain.Category]*CategoryGroup)

	for _, def := range c.defs {
		g, ok := groups[def.Category]
		if !ok {
			g = &CategoryGroup{Category: def.Category}
			groups[def.Category] = g
			order = append(order, def.Category)
		}
		g.SNPs = append(g.SNPs, def)
		g.Count++
	}

	out := make([]CategoryGroup, 0, len(order))
	for _, cat := range order {
		out = append(out, *groups[cat])
	}
	return out
}
