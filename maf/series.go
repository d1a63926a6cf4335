package maf

import (
	"github.com/carbocation/alfafreq"
	"github.com/carbocation/pfx"
)

// Series holds one MAF value per population per position. Every slice in MAF
// has the same length as Positions; a population without counts at a
// position holds Missing there.
type Series struct {
	Keys      []string
	Positions []int
	MAF       map[string][]float64
}

// Len is the number of positions in the series.
func (s Series) Len() int {
	return len(s.Positions)
}

// Populations returns the populations seen anywhere in the series.
func (s Series) Populations() []string {
	out := make([]string, 0, len(s.MAF))
	for pop := range s.MAF {
		out = append(out, pop)
	}

	return sortedStrings(out)
}

// Points returns the positions and MAF values for population, skipping the
// positions where it had no counts.
func (s Series) Points(population string) (positions []int, values []float64) {
	for i, v := range s.MAF[population] {
		if IsMissing(v) {
			continue
		}
		positions = append(positions, s.Positions[i])
		values = append(values, v)
	}

	return positions, values
}

// Positions computes the MAF of every population at every record of data.
// Records are taken in ascending position order.
func Positions(data alfafreq.Dataset) (Series, error) {
	keys := data.SortedKeys()

	out := Series{
		Keys:      make([]string, 0, len(keys)),
		Positions: make([]int, 0, len(keys)),
		MAF:       make(map[string][]float64),
	}

	for i, key := range keys {
		pos, err := alfafreq.ParsePosition(key)
		if err != nil {
			return out, pfx.Err(err)
		}

		out.Keys = append(out.Keys, key)
		out.Positions = append(out.Positions, pos)

		for pop, value := range Compute(data[key]) {
			if _, exists := out.MAF[pop]; !exists {
				// Back-fill the positions that came before this population
				// first appeared.
				vals := make([]float64, i, len(keys))
				for j := range vals {
					vals[j] = Missing
				}
				out.MAF[pop] = vals
			}
			out.MAF[pop] = append(out.MAF[pop], value)
		}

		// Pad the populations that were absent from this record.
		for pop, vals := range out.MAF {
			if len(vals) < i+1 {
				out.MAF[pop] = append(vals, Missing)
			}
		}
	}

	return out, nil
}
