package maf

import (
	"fmt"
	"log"
	"sort"

	"github.com/carbocation/alfafreq"
	"gonum.org/v1/gonum/stat"
)

// PopulationNotFoundError is returned by Cross when a project block of a
// record has no counts for one of the requested populations.
type PopulationNotFoundError struct {
	Key         string
	Project     string
	BiosampleID string
}

func (e *PopulationNotFoundError) Error() string {
	return fmt.Sprintf("population %s not found in project %s of record %s", e.BiosampleID, e.Project, e.Key)
}

// CrossResult holds, for each allele, the frequencies of that allele in the
// X and Y populations. X[allele][i] and Y[allele][i] always come from the
// same project block of the same record.
type CrossResult struct {
	XPopulation string
	YPopulation string
	X           map[string][]float64
	Y           map[string][]float64

	// Skipped counts project blocks where either population had a total count
	// of zero.
	Skipped int
}

// Alleles returns the alleles with at least one pair, in sorted order.
func (c CrossResult) Alleles() []string {
	out := make([]string, 0, len(c.X))
	for allele := range c.X {
		out = append(out, allele)
	}

	return sortedStrings(out)
}

// Pairs is the number of (x, y) pairs collected for allele.
func (c CrossResult) Pairs(allele string) int {
	return len(c.X[allele])
}

// Correlation returns the Pearson correlation between the X and Y
// frequencies of allele. ok is false with fewer than two pairs.
func (c CrossResult) Correlation(allele string) (r float64, ok bool) {
	x, y := c.X[allele], c.Y[allele]
	if len(x) < 2 || len(x) != len(y) {
		return 0, false
	}

	return stat.Correlation(x, y, nil), true
}

// Cross compares the per-allele frequencies of populations x and y across
// every project block of every record in data. Blocks where either
// population has no observations are skipped and counted. A block missing
// either population is an error.
func Cross(data alfafreq.Dataset, x, y string) (CrossResult, error) {
	out := CrossResult{
		XPopulation: x,
		YPopulation: y,
		X:           make(map[string][]float64),
		Y:           make(map[string][]float64),
	}

	for _, key := range data.SortedKeys() {
		record := data[key]

		for _, project := range record.Projects() {
			counts := record.Counts[project].AlleleCounts

			xCounts, exists := counts[x]
			if !exists {
				return out, &PopulationNotFoundError{Key: key, Project: project, BiosampleID: x}
			}
			yCounts, exists := counts[y]
			if !exists {
				return out, &PopulationNotFoundError{Key: key, Project: project, BiosampleID: y}
			}

			xFreqs, xOK := xCounts.Frequencies()
			yFreqs, yOK := yCounts.Frequencies()
			if !xOK || !yOK {
				out.Skipped++
				continue
			}

			alleles := make([]string, 0, len(xFreqs))
			for allele := range xFreqs {
				if _, exists := yFreqs[allele]; exists {
					alleles = append(alleles, allele)
				}
			}
			sort.Strings(alleles)

			for _, allele := range alleles {
				out.X[allele] = append(out.X[allele], xFreqs[allele])
				out.Y[allele] = append(out.Y[allele], yFreqs[allele])
			}
		}
	}

	log.Printf("Skipped %d of the project blocks in %d records because %s or %s had no observed alleles\n", out.Skipped, len(data), x, y)

	return out, nil
}
