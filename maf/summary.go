package maf

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Summary describes the distribution of MAF values for one population across
// a Series.
type Summary struct {
	Population  string  `csv:"population"`
	Name        string  `csv:"name"`
	Sites       int     `csv:"sites"`
	Polymorphic int     `csv:"polymorphic"`
	Mean        float64 `csv:"mean_maf"`
	Median      float64 `csv:"median_maf"`
	P95         float64 `csv:"p95_maf"`
}

// Summarize computes a Summary per population in s, ignoring the positions
// where a population had no counts. Populations are returned in sorted order.
// Name is left for the caller to fill in.
func Summarize(s Series) ([]Summary, error) {
	out := make([]Summary, 0, len(s.MAF))

	for _, pop := range s.Populations() {
		_, values := s.Points(pop)

		sum := Summary{Population: pop, Sites: len(values)}
		for _, v := range values {
			if v > 0 {
				sum.Polymorphic++
			}
		}

		if len(values) > 0 {
			data := stats.LoadRawData(values)

			var err error
			if sum.Mean, err = data.Mean(); err != nil {
				return nil, err
			}
			if sum.Median, err = data.Median(); err != nil {
				return nil, err
			}
			if sum.P95, err = data.Percentile(95); err != nil {
				return nil, err
			}
		}

		out = append(out, sum)
	}

	return out, nil
}

func sortedStrings(in []string) []string {
	sort.Strings(in)
	return in
}
