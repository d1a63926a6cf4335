// Package chrpos maps human chromosome names to the RefSeq sequence
// accessions that the NCBI Variation Services key their intervals by, and
// splits long intervals into windows.
package chrpos

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/BenLubar/memoize"
	"github.com/carbocation/pfx"
)

//go:embed lookups/*
var embeddedTemplates embed.FS

// Locus is one chromosome of an assembly.
type Locus struct {
	Chrom  string
	RefSeq string
	Length int
}

// Window is an inclusive [Start, Stop] stretch of a sequence.
type Window struct {
	Start int
	Stop  int
}

type lookupTable struct {
	loci []Locus
	err  error
}

var memoizedTable = memoize.Memoize(readTable)

// Assemblies lists the assemblies with an embedded lookup table.
var Assemblies = []string{"grch37", "grch38"}

// Lookup finds chromosome in assembly (grch37 or grch38). chromosome may be
// given as "7", "chr7", or as a RefSeq accession such as "NC_000007.14".
func Lookup(assembly, chromosome string) (Locus, error) {
	loci, err := Loci(assembly)
	if err != nil {
		return Locus{}, err
	}

	want := strings.TrimPrefix(strings.TrimPrefix(chromosome, "chr"), "CHR")
	for _, locus := range loci {
		if locus.Chrom == want || locus.RefSeq == chromosome {
			return locus, nil
		}
	}

	return Locus{}, fmt.Errorf("chromosome %q is not part of %s", chromosome, assembly)
}

// Loci returns every chromosome of assembly, in table order.
func Loci(assembly string) ([]Locus, error) {
	table := memoizedTable.(func(string) lookupTable)(strings.ToLower(assembly))
	if table.err != nil {
		return nil, table.err
	}

	out := make([]Locus, len(table.loci))
	copy(out, table.loci)

	return out, nil
}

func readTable(assembly string) lookupTable {
	fileBytes, err := embeddedTemplates.ReadFile("lookups/" + assembly)
	if err != nil {
		return lookupTable{err: fmt.Errorf("unknown assembly %q; expected one of %v", assembly, Assemblies)}
	}

	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = '\t'
	entries, err := cr.ReadAll()
	if err != nil {
		return lookupTable{err: pfx.Err(err)}
	}

	loci := make([]Locus, 0, len(entries))
	header := make(map[string]int)

	for i, v := range entries {
		if i == 0 {
			for key, name := range v {
				header[name] = key
			}
			continue
		}

		end, err := strconv.Atoi(v[header["chromEnd"]])
		if err != nil {
			return lookupTable{err: pfx.Err(err)}
		}

		loci = append(loci, Locus{
			Chrom:  v[header["name"]],
			RefSeq: v[header["refseq"]],
			Length: end,
		})
	}

	return lookupTable{loci: loci}
}

// ChunkInterval splits the inclusive interval [start, stop] of locus into
// consecutive windows of at most chunksize positions. stop is clamped to the
// chromosome length. A chunksize < 1 yields a single window, as does a stop
// before start, which is passed through unchanged so the request still covers
// one position.
func ChunkInterval(locus Locus, start, stop, chunksize int) ([]Window, error) {
	if start < 0 {
		return nil, fmt.Errorf("start %d is negative", start)
	}
	if locus.Length > 0 && stop > locus.Length {
		stop = locus.Length
	}
	if chunksize < 1 || stop < start {
		return []Window{{Start: start, Stop: stop}}, nil
	}

	output := make([]Window, 0, (stop-start)/chunksize+1)
	for pos := start; pos <= stop; pos += chunksize {
		end := pos + chunksize - 1
		if end > stop {
			end = stop
		}
		output = append(output, Window{Start: pos, Stop: end})
	}

	return output, nil
}
