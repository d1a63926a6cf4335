// Package maf turns ALFA allele counts into minor allele frequencies, either
// one value per population per site or, for comparing two populations,
// aligned per-allele frequency sequences.
package maf

import (
	"math"
	"sort"

	"github.com/carbocation/alfafreq"
)

// Missing marks a population that has no counts at a position.
var Missing = math.NaN()

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Of returns the minor allele frequency for one population's counts: the
// second largest count over the total. Monomorphic sites and sites with no
// observations have a MAF of 0.
func Of(counts alfafreq.AlleleCounts) float64 {
	if len(counts) < 2 {
		return 0
	}

	values := make([]int, 0, len(counts))
	total := 0
	for _, v := range counts {
		values = append(values, v)
		total += v
	}

	if total == 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	return float64(values[1]) / float64(total)
}

// Compute returns the MAF of every population in record. Projects are visited
// in accession order; if one population appears under several projects, the
// value from the last project wins.
func Compute(record alfafreq.VariantRecord) map[string]float64 {
	out := make(map[string]float64)

	for _, project := range record.Projects() {
		for population, counts := range record.Counts[project].AlleleCounts {
			out[population] = Of(counts)
		}
	}

	return out
}
