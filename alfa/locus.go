package alfa

import (
	"context"
	"log"

	"github.com/carbocation/alfafreq"
	"github.com/carbocation/alfafreq/chrpos"
)

// FetchLocus downloads [start, stop] of locus in windows of chunk positions
// (see chrpos.ChunkInterval), one window after another, and merges the
// results. Each window is paginated and bounded as in FetchInterval.
func (c *Client) FetchLocus(ctx context.Context, locus chrpos.Locus, start, stop, chunk int) (alfafreq.Dataset, error) {
	windows, err := chrpos.ChunkInterval(locus, start, stop, chunk)
	if err != nil {
		return nil, err
	}

	out := make(alfafreq.Dataset)
	for i, w := range windows {
		data, err := c.FetchInterval(ctx, locus.RefSeq, w.Start, w.Stop)
		if err != nil {
			return nil, err
		}
		out.Merge(data)

		if c.config.Verbose && len(windows) > 1 {
			log.Printf("Window %d/%d (%s:%d-%d): %d records\n", i+1, len(windows), locus.RefSeq, w.Start, w.Stop, len(data))
		}
	}

	return out, nil
}

// ResolveLocus picks the sequence to query: seqID if set, otherwise
// chromosome looked up in assembly.
func ResolveLocus(seqID, chromosome, assembly string) (chrpos.Locus, error) {
	if seqID != "" {
		return chrpos.Locus{RefSeq: seqID}, nil
	}

	return chrpos.Lookup(assembly, chromosome)
}
