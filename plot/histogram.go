package plot

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/alfafreq/maf"
)

// Histogram writes a text histogram of values to w, dropping Missing
// entries. Nothing is written if no values remain.
func Histogram(w io.Writer, label string, values []float64, bins int) error {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if maf.IsMissing(v) {
			continue
		}
		present = append(present, v)
	}

	if len(present) == 0 {
		return nil
	}

	if bins <= 0 {
		bins = 10
	}

	if _, err := fmt.Fprintf(w, "%s (N=%d)\n", label, len(present)); err != nil {
		return err
	}

	hist := histogram.Hist(bins, present)

	return histogram.Fprint(w, hist, histogram.Linear(40))
}
