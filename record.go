// Package alfafreq holds the data model shared by the ALFA client, the
// frequency aggregators and the plotting helpers: variant records keyed by
// "<sequence>@<position>", the accumulated dataset built from paginated
// interval downloads, and the population metadata tree.
package alfafreq

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KeySeparator splits a record key into its sequence and position parts.
const KeySeparator = "@"

// AlleleCounts maps an allele symbol (e.g., "A", or "ATT" for an indel) to the
// number of times it was observed in one population.
type AlleleCounts map[string]int

// Total is the sum of all counts.
func (a AlleleCounts) Total() int {
	total := 0
	for _, v := range a {
		total += v
	}

	return total
}

// Frequencies converts the counts into per-allele frequencies. ok is false
// when the total count is zero, in which case no frequency is defined.
func (a AlleleCounts) Frequencies() (freqs map[string]float64, ok bool) {
	total := a.Total()
	if total == 0 {
		return nil, false
	}

	freqs = make(map[string]float64, len(a))
	for allele, count := range a {
		freqs[allele] = float64(count) / float64(total)
	}

	return freqs, true
}

// ProjectCounts is the contribution of one project (e.g., PRJNA507278) to a
// variant record, keyed by biosample identifier.
type ProjectCounts struct {
	AlleleCounts map[string]AlleleCounts `json:"allele_counts"`
}

// VariantRecord is the value half of one entry of an
// overlapping_frequency_records page.
type VariantRecord struct {
	Ref    string                   `json:"ref,omitempty"`
	Counts map[string]ProjectCounts `json:"counts"`
}

// Projects returns the project accessions of the record in sorted order.
func (v VariantRecord) Projects() []string {
	out := make([]string, 0, len(v.Counts))
	for project := range v.Counts {
		out = append(out, project)
	}
	sort.Strings(out)

	return out
}

// Dataset is the union of every record returned for an interval.
type Dataset map[string]VariantRecord

// Merge copies every record of other into d. When a key is already present,
// the incoming record replaces it; overlapping pages return identical values
// for the same key.
func (d Dataset) Merge(other Dataset) {
	for k, v := range other {
		d[k] = v
	}
}

// SortedKeys returns the keys ordered by genomic position, then by key. Keys
// whose position cannot be parsed sort last.
func (d Dataset) SortedKeys() []string {
	type keyPos struct {
		key string
		pos int
		ok  bool
	}

	kp := make([]keyPos, 0, len(d))
	for k := range d {
		pos, err := ParsePosition(k)
		kp = append(kp, keyPos{key: k, pos: pos, ok: err == nil})
	}

	sort.Slice(kp, func(i, j int) bool {
		if kp[i].ok != kp[j].ok {
			return kp[i].ok
		}
		if kp[i].pos != kp[j].pos {
			return kp[i].pos < kp[j].pos
		}
		return kp[i].key < kp[j].key
	})

	out := make([]string, 0, len(kp))
	for _, v := range kp {
		out = append(out, v.key)
	}

	return out
}

// MaxPosition returns the largest position among the keys of d. ok is false
// if d is empty.
func (d Dataset) MaxPosition() (max int, ok bool, err error) {
	for k := range d {
		pos, err := ParsePosition(k)
		if err != nil {
			return 0, false, err
		}
		if !ok || pos > max {
			max = pos
			ok = true
		}
	}

	return max, ok, nil
}

// ParsePosition extracts the integer genomic position from a record key such
// as "NC_000001.11@12345". Everything before the last separator is ignored.
func ParsePosition(key string) (int, error) {
	idx := strings.LastIndex(key, KeySeparator)
	if idx < 0 {
		return 0, fmt.Errorf("record key %q has no %q separator", key, KeySeparator)
	}

	pos, err := strconv.Atoi(key[idx+len(KeySeparator):])
	if err != nil {
		return 0, fmt.Errorf("record key %q: %w", key, err)
	}

	return pos, nil
}
