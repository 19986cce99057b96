package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrigenomics-server/internal/domain"
)

func TestCanonicalGenotype(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Already sorted", input: "CT", want: "CT"},
		{name: "Reversed order", input: "TC", want: "CT"},
		{name: "Lowercase input", input: "ct", want: "CT"},
		{name: "Homozygous", input: "AA", want: "AA"},
		{name: "Single allele", input: "A", want: "A"},
		{name: "Empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalGenotype(tt.input))
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := New()

	def, err := c.Lookup("rs4988235")
	require.NoError(t, err)
	assert.Equal(t, "LCT/MCM6", def.Gene)
	assert.Equal(t, domain.CategoryDigestion, def.Category)

	_, err = c.Lookup("rs999999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownSNP))
}

func TestCatalog_Interpret_OrderInsensitive(t *testing.T) {
	c := New()

	def, err := c.Lookup("rs1801133")
	require.NoError(t, err)

	// Heterozygous genotypes must resolve identically regardless of
	// allele order in the input.
	ruleCT, okCT := c.Interpret(def, "CT")
	ruleTC, okTC := c.Interpret(def, "TC")
	require.True(t, okCT)
	require.True(t, okTC)
	assert.Equal(t, ruleCT, ruleTC)
	assert.Equal(t, domain.RISK_MODERATE, ruleCT.Risk)
}

func TestCatalog_Interpret_MinusStrand(t *testing.T) {
	c := New()

	def, err := c.Lookup("rs4988235")
	require.NoError(t, err)

	// Plus-strand TT (lactase persistent) and minus-strand AA (its
	// complement) are distinct keys with matching interpretations.
	plus, okPlus := c.Interpret(def, "TT")
	minus, okMinus := c.Interpret(def, "AA")
	require.True(t, okPlus)
	require.True(t, okMinus)
	assert.Equal(t, domain.RISK_LOW, plus.Risk)
	assert.Equal(t, domain.RISK_LOW, minus.Risk)

	// Plus-strand CC is high risk while its complement GG is too.
	cc, okCC := c.Interpret(def, "CC")
	gg, okGG := c.Interpret(def, "GG")
	require.True(t, okCC)
	require.True(t, okGG)
	assert.Equal(t, domain.RISK_HIGH, cc.Risk)
	assert.Equal(t, domain.RISK_HIGH, gg.Risk)
}

func TestCatalog_Interpret_Unrecognized(t *testing.T) {
	c := New()

	def, err := c.Lookup("rs671")
	require.NoError(t, err)

	_, ok := c.Interpret(def, "XX")
	assert.False(t, ok)
}

func TestCatalog_List_RegistrationOrder(t *testing.T) {
	c := New()

	defs := c.List()
	require.Equal(t, 25, len(defs))
	assert.Equal(t, 25, c.Size())

	// First and last entries pin the registration order.
	assert.Equal(t, "rs4988235", defs[0].RSID)
	assert.Equal(t, "rs7946", defs[len(defs)-1].RSID)

	// Every definition carries at least one interpretation and a
	// populated source on each rule.
	for _, def := range defs {
		assert.NotEmpty(t, def.Interpretations, "definition %s has no interpretations", def.RSID)
		for g, rule := range def.Interpretations {
			assert.True(t, rule.Risk.IsValid(), "definition %s genotype %s has invalid risk %q", def.RSID, g, rule.Risk)
			assert.Equal(t, g, CanonicalGenotype(g), "definition %s key %s is not canonical", def.RSID, g)
			assert.NotEmpty(t, rule.Source, "definition %s genotype %s has no source", def.RSID, g)
		}
	}
}

func TestCatalog_CategoryGroups(t *testing.T) {
	c := New()

	groups := c.CategoryGroups()
	require.NotEmpty(t, groups)

	// Groups appear in first-registration order, starting with
	// digestion (lactose, celiac).
	assert.Equal(t, domain.CategoryDigestion, groups[0].Category)

	total := 0
	for _, g := range groups {
		assert.Equal(t, len(g.SNPs), g.Count)
		total += g.Count
	}
	assert.Equal(t, c.Size(), total)
}
