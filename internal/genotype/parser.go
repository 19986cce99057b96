// Package genotype reads raw consumer genotype exports (23andMe,
// AncestryDNA and compatible tab-separated formats) into an rsID-keyed
// lookup that the analysis pipeline consumes.
package genotype

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/domain"
)

// ErrInvalidFile indicates the input is not a recognizable genotype
// export.
var ErrInvalidFile = fmt.Errorf("no SNP data found in file")

// Profile is the parsed result. It implements domain.GenotypeSource.
type Profile struct {
	genotypes map[string]string
	info      domain.FileInfo
}

// Genotype returns the raw genotype for an rsID. No-call entries are
// dropped during parsing, so absence covers both "not on the chip" and
// "not called".
func (p *Profile) Genotype(rsid string) (string, bool) {
	g, ok := p.genotypes[rsid]
	return g, ok
}

// Info describes the parsed file (vendor, SNP count, reference build).
func (p *Profile) Info() domain.FileInfo {
	return p.info
}

// Parser reads raw genotype exports. When constructed with a keep list
// it retains only those rsIDs, so a 600k-row chip export does not stay
// resident after parsing; the reported SNP count still covers every
// data row.
type Parser struct {
	log  *logrus.Logger
	keep map[string]struct{}
}

// NewParser creates a parser. keep lists the rsIDs worth retaining;
// nil or empty retains everything.
func NewParser(logger *logrus.Logger, keep []string) *Parser {
	p := &Parser{log: logger}
	if len(keep) > 0 {
		p.keep = make(map[string]struct{}, len(keep))
		for _, rsid := range keep {
			p.keep[rsid] = struct{}{}
		}
	}
	return p
}

// ParseFile opens and parses a genotype export from disk.
func (p *Parser) ParseFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open genotype file: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads a genotype export. The vendor is detected from header
// comments and column layout; unrecognized comment-free TSV input is
// treated as generic four-column data.
func (p *Parser) Parse(r io.Reader) (*Profile, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	profile := &Profile{
		genotypes: make(map[string]string),
		info:      domain.FileInfo{Source: "Unknown", Build: 37},
	}

	ancestryLayout := false
	rows := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			p.sniffComment(line, &profile.info)
			continue
		}

		fields := splitRow(line)
		if len(fields) < 2 {
			continue
		}

		// Header row ("rsid\tchromosome\t..."). AncestryDNA splits the
		// genotype into allele1/allele2 columns.
		if strings.EqualFold(fields[0], "rsid") {
			for _, f := range fields {
				if strings.EqualFold(f, "allele1") {
					ancestryLayout = true
					if profile.info.Source == "Unknown" {
						profile.info.Source = "AncestryDNA"
					}
				}
			}
			continue
		}

		rsid, genotype, ok := parseRow(fields, ancestryLayout)
		if !ok {
			continue
		}
		rows++

		if isNoCall(genotype) {
			continue
		}
		if p.keep != nil {
			if _, wanted := p.keep[rsid]; !wanted {
				continue
			}
		}
		profile.genotypes[rsid] = genotype
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read genotype file: %w", err)
	}

	if rows == 0 {
		return nil, ErrInvalidFile
	}
	profile.info.SNPCount = rows

	p.log.WithFields(logrus.Fields{
		"source":    profile.info.Source,
		"build":     profile.info.Build,
		"snp_count": profile.info.SNPCount,
		"retained":  len(profile.genotypes),
	}).Info("Parsed genotype file")

	return profile, nil
}

// sniffComment extracts vendor and reference build hints from header
// comment lines.
func (p *Parser) sniffComment(line string, info *domain.FileInfo) {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "23andme"):
		info.Source = "23andMe"
	case strings.Contains(lower, "ancestrydna"):
		info.Source = "AncestryDNA"
	}
	if strings.Contains(lower, "build 38") || strings.Contains(lower, "grch38") {
		info.Build = 38
	}
}

// splitRow splits a data row on tabs, falling back to commas for
// CSV-style exports.
func splitRow(line string) []string {
	if strings.ContainsRune(line, '\t') {
		return strings.Split(line, "\t")
	}
	return strings.Split(line, ",")
}

// parseRow extracts (rsid, genotype) from a data row. The 23andMe
// layout carries the genotype in the fourth column; AncestryDNA splits
// it across allele1/allele2.
func parseRow(fields []string, ancestryLayout bool) (string, string, bool) {
	rsid := strings.TrimSpace(fields[0])
	if rsid == "" {
		return "", "", false
	}

	if ancestryLayout {
		if len(fields) < 5 {
			return "", "", false
		}
		a1 := strings.TrimSpace(fields[3])
		a2 := strings.TrimSpace(fields[4])
		return rsid, a1 + a2, true
	}

	if len(fields) < 4 {
		return "", "", false
	}
	return rsid, strings.TrimSpace(fields[3]), true
}

// isNoCall reports whether a raw genotype is a vendor no-call
// sentinel.
func isNoCall(genotype string) bool {
	switch genotype {
	case "", "--", "00", "NN", "0":
		return true
	}
	return false
}
