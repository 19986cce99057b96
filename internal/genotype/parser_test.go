package genotype

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample23andMe = `# This data file generated by 23andMe at: Thu Feb 01 12:00:00 2024
# More information on reference human assembly build 37
# rsid	chromosome	position	genotype
rs4988235	2	136608646	CT
rs602662	19	49206985	AG
rs671	12	112241766	--
rs9939609	16	53820527	AA
`

const sampleAncestry = `#AncestryDNA raw data download
#Below is a text version of your DNA file
rsid	chromosome	position	allele1	allele2
rs4988235	2	136608646	C	C
rs1801133	1	11856378	T	C
rs602662	19	49206985	0	0
`

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestParser_Parse23andMe(t *testing.T) {
	parser := NewParser(testLogger(), nil)

	profile, err := parser.Parse(strings.NewReader(sample23andMe))
	require.NoError(t, err)

	info := profile.Info()
	assert.Equal(t, "23andMe", info.Source)
	assert.Equal(t, 37, info.Build)
	assert.Equal(t, 4, info.SNPCount)

	g, ok := profile.Genotype("rs4988235")
	require.True(t, ok)
	assert.Equal(t, "CT", g)

	// No-call rows are dropped rather than surfaced as "--".
	_, ok = profile.Genotype("rs671")
	assert.False(t, ok)

	_, ok = profile.Genotype("rs0000")
	assert.False(t, ok)
}

func TestParser_ParseAncestryDNA(t *testing.T) {
	parser := NewParser(testLogger(), nil)

	profile, err := parser.Parse(strings.NewReader(sampleAncestry))
	require.NoError(t, err)

	info := profile.Info()
	assert.Equal(t, "AncestryDNA", info.Source)
	assert.Equal(t, 3, info.SNPCount)

	// Alleles are joined; canonicalization happens later in the
	// catalogue, not here.
	g, ok := profile.Genotype("rs1801133")
	require.True(t, ok)
	assert.Equal(t, "TC", g)

	// "0 0" is AncestryDNA's no-call.
	_, ok = profile.Genotype("rs602662")
	assert.False(t, ok)
}

func TestParser_KeepFilter(t *testing.T) {
	parser := NewParser(testLogger(), []string{"rs4988235"})

	profile, err := parser.Parse(strings.NewReader(sample23andMe))
	require.NoError(t, err)

	_, ok := profile.Genotype("rs4988235")
	assert.True(t, ok)
	_, ok = profile.Genotype("rs602662")
	assert.False(t, ok)

	// The count still reflects every data row in the file.
	assert.Equal(t, 4, profile.Info().SNPCount)
}

func TestParser_Build38Detection(t *testing.T) {
	input := "# generated by 23andMe\n# reference human assembly build 38 (GRCh38)\nrs4988235\t2\t135851076\tTT\n"
	parser := NewParser(testLogger(), nil)

	profile, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 38, profile.Info().Build)
}

func TestParser_EmptyFile(t *testing.T) {
	parser := NewParser(testLogger(), nil)

	tests := []struct {
		name  string
		input string
	}{
		{name: "Empty input", input: ""},
		{name: "Comments only", input: "# header\n# more header\n"},
		{name: "Garbage", input: "not a genotype file at all\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFile)
		})
	}
}
