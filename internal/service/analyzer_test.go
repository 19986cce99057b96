package service

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrigenomics-server/internal/catalog"
	"github.com/nutrigenomics-server/internal/domain"
)

// mapSource is a map-backed GenotypeSource for tests.
type mapSource map[string]string

func (m mapSource) Genotype(rsid string) (string, bool) {
	g, ok := m[rsid]
	return g, ok
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestAnalyzer_AnalyzeAll_OneFindingPerEntry(t *testing.T) {
	cat := catalog.New()
	analyzer := NewAnalyzer(cat, testLogger())

	findings := analyzer.AnalyzeAll(mapSource{
		"rs4988235": "CT",
		"rs671":     "GG",
	})

	// Exactly one finding per catalogue entry, in registration order,
	// regardless of how sparse the source is.
	require.Equal(t, cat.Size(), len(findings))

	seen := make(map[string]bool)
	for i, f := range findings {
		assert.False(t, seen[f.RSID], "duplicate finding for %s", f.RSID)
		seen[f.RSID] = true
		assert.Equal(t, cat.List()[i].RSID, f.RSID)
	}
}

func TestAnalyzer_AnalyzeSNP(t *testing.T) {
	analyzer := NewAnalyzer(catalog.New(), testLogger())

	tests := []struct {
		name         string
		rsid         string
		source       mapSource
		wantErr      bool
		wantRisk     domain.RiskLevel
		wantGenotype bool
		wantMatched  bool
	}{
		{
			name:         "Matched genotype",
			rsid:         "rs4988235",
			source:       mapSource{"rs4988235": "CC"},
			wantRisk:     domain.RISK_HIGH,
			wantGenotype: true,
			wantMatched:  true,
		},
		{
			name:         "Reversed allele order matches same rule",
			rsid:         "rs1801133",
			source:       mapSource{"rs1801133": "TC"},
			wantRisk:     domain.RISK_MODERATE,
			wantGenotype: true,
			wantMatched:  true,
		},
		{
			name:         "Missing from source",
			rsid:         "rs4988235",
			source:       mapSource{},
			wantRisk:     domain.RISK_LOW,
			wantGenotype: false,
		},
		{
			name:         "No-call sentinel",
			rsid:         "rs4988235",
			source:       mapSource{"rs4988235": "--"},
			wantRisk:     domain.RISK_LOW,
			wantGenotype: false,
		},
		{
			name:         "Unrecognized genotype",
			rsid:         "rs4988235",
			source:       mapSource{"rs4988235": "ZZ"},
			wantRisk:     domain.RISK_LOW,
			wantGenotype: true,
			wantMatched:  false,
		},
		{
			name:    "Unknown rsID",
			rsid:    "rs0",
			source:  mapSource{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding, err := analyzer.AnalyzeSNP(tt.source, tt.rsid)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrUnknownSNP))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRisk, finding.Risk)
			if tt.wantGenotype {
				require.NotNil(t, finding.Genotype)
			} else {
				assert.Nil(t, finding.Genotype)
				assert.True(t, finding.Unmatched)
			}
			if tt.wantGenotype {
				assert.Equal(t, tt.wantMatched, !finding.Unmatched)
			}
		})
	}
}

func TestAnalyzer_NoCallInterpretation(t *testing.T) {
	analyzer := NewAnalyzer(catalog.New(), testLogger())

	for _, sentinel := range []string{"", "--", "00", "NN"} {
		finding, err := analyzer.AnalyzeSNP(mapSource{"rs671": sentinel}, "rs671")
		require.NoError(t, err)
		assert.Equal(t, domain.RISK_LOW, finding.Risk, "sentinel %q", sentinel)
		assert.Nil(t, finding.Genotype, "sentinel %q", sentinel)
		assert.False(t, finding.HasGenotype())
		assert.Equal(t, "Genotype not available in your data file", finding.Interpretation)
	}
}

func TestAnalyzer_UnrecognizedGenotypeFallback(t *testing.T) {
	analyzer := NewAnalyzer(catalog.New(), testLogger())

	finding, err := analyzer.AnalyzeSNP(mapSource{"rs762551": "GG"}, "rs762551")
	require.NoError(t, err)
	require.NotNil(t, finding.Genotype)
	assert.Equal(t, "GG", *finding.Genotype)
	assert.True(t, finding.Unmatched)
	assert.False(t, finding.HasGenotype())
	assert.Contains(t, finding.Interpretation, "Unrecognized genotype")
	assert.Equal(t, fallbackRecommendation, finding.Recommendation)
}

func TestSummarize_HistogramConsistency(t *testing.T) {
	cat := catalog.New()
	analyzer := NewAnalyzer(cat, testLogger())

	findings := analyzer.AnalyzeAll(mapSource{
		"rs4988235": "CC", // high
		"rs1801133": "CT", // moderate
		"rs1229984": "TT", // protective
		"rs671":     "GG", // low
	})

	summary := domain.Summarize(findings)
	assert.Equal(t, len(findings), summary.Analyzed)
	assert.Equal(t, len(findings), summary.Low+summary.Moderate+summary.High+summary.Protective)
	assert.GreaterOrEqual(t, summary.High, 1)
	assert.GreaterOrEqual(t, summary.Moderate, 1)
	assert.GreaterOrEqual(t, summary.Protective, 1)
}

func TestFindingsByRisk(t *testing.T) {
	analyzer := NewAnalyzer(catalog.New(), testLogger())
	findings := analyzer.AnalyzeAll(mapSource{"rs4988235": "CC"})

	high := FindingsByRisk(findings, domain.RISK_HIGH)
	require.Len(t, high, 1)
	assert.Equal(t, "rs4988235", high[0].RSID)
}
