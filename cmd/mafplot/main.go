package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/alfafreq"
	"github.com/carbocation/alfafreq/alfa"
	"github.com/carbocation/alfafreq/chrpos"
	_ "github.com/carbocation/alfafreq/compileinfoprint"
	"github.com/carbocation/alfafreq/maf"
	"github.com/carbocation/alfafreq/plot"
)

const (
	BufferSize = 4096 * 8
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, BufferSize)
	client *storage.Client
)

type siteRow struct {
	Key        string  `csv:"key"`
	Position   int     `csv:"position"`
	Population string  `csv:"biosample_id"`
	Name       string  `csv:"name"`
	MAF        float64 `csv:"maf"`
}

func main() {
	defer STDOUT.Flush()

	var (
		seqID, chromosome, assembly string
		start, stop, chunk          int
		outputPath, summaryPath     string
		populations                 string
		title                       string
		width, height               int
		resolveNames, printHist     bool
		cfg                         = alfa.DefaultConfig()
	)

	flag.StringVar(&seqID, "seq", "", "RefSeq accession of the sequence, e.g., NC_000007.14. Alternatively, use -chrom.")
	flag.StringVar(&chromosome, "chrom", "", "Chromosome name (e.g., 7 or chr7), resolved with -assembly. Ignored if -seq is set.")
	flag.StringVar(&assembly, "assembly", "grch38", "Assembly used to resolve -chrom: grch37 or grch38")
	flag.IntVar(&start, "start", -1, "First position of the interval (inclusive)")
	flag.IntVar(&stop, "stop", -1, "Last position of the interval (inclusive)")
	flag.IntVar(&chunk, "chunk", 0, "(Optional) Split the interval into windows of this many positions, fetched one after another")
	flag.StringVar(&outputPath, "output", "", "(Optional) Path to the scatter plot, .png or .svg. May be a gs:// path.")
	flag.StringVar(&summaryPath, "summary", "", "(Optional) Path to a per-population summary TSV. May be a gs:// path.")
	flag.StringVar(&populations, "populations", "", "(Optional) Comma-separated biosample IDs to keep. Default: all.")
	flag.StringVar(&title, "title", "", "(Optional) Plot title")
	flag.IntVar(&width, "width", 1024, "Plot width in pixels")
	flag.IntVar(&height, "height", 768, "Plot height in pixels")
	flag.BoolVar(&resolveNames, "names", true, "Fetch population metadata to label populations by name?")
	flag.BoolVar(&printHist, "hist", false, "Print a MAF histogram per population to STDERR?")
	flag.StringVar(&cfg.BaseURL, "base_url", cfg.BaseURL, "Root of the Variation Services API")
	flag.IntVar(&cfg.MaxPages, "max_pages", cfg.MaxPages, "Give up after this many pages per window")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Give up on a window after this long")
	flag.Float64Var(&cfg.RequestsPerSecond, "rps", cfg.RequestsPerSecond, "Maximum requests per second")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log every request?")
	flag.Parse()

	if (seqID == "" && chromosome == "") || start < 0 || stop < 0 {
		flag.PrintDefaults()
		log.Fatalln("Please provide -seq (or -chrom) along with -start and -stop")
	}

	if strings.HasPrefix(outputPath, "gs://") || strings.HasPrefix(summaryPath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	locus, err := alfa.ResolveLocus(seqID, chromosome, assembly)
	if err != nil {
		log.Fatalln(err)
	}

	opts := plot.Options{
		Title:  title,
		Width:  width,
		Height: height,
		Format: plot.FormatForPath(outputPath),
	}

	if err := run(context.Background(), alfa.New(cfg), locus, start, stop, chunk, splitList(populations), outputPath, summaryPath, opts, resolveNames, printHist); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, api *alfa.Client, locus chrpos.Locus, start, stop, chunk int, keep []string, outputPath, summaryPath string, opts plot.Options, resolveNames, printHist bool) error {
	started := time.Now()

	data, err := api.FetchLocus(ctx, locus, start, stop, chunk)
	if err != nil {
		return err
	}
	log.Printf("Fetched %d records from %s:%d-%d in %s\n", len(data), locus.RefSeq, start, stop, time.Since(started))

	series, err := maf.Positions(data)
	if err != nil {
		return err
	}

	names := alfafreq.PopulationMap{}
	if resolveNames {
		names, err = api.Populations(ctx)
		if err != nil {
			return err
		}
	}

	if len(keep) == 0 {
		keep = series.Populations()
	}

	rows := make([]siteRow, 0, series.Len()*len(keep))
	for _, pop := range keep {
		vals, exists := series.MAF[pop]
		if !exists {
			log.Printf("Population %s (%s) has no counts in this interval\n", pop, names.Name(pop))
			continue
		}
		for i, v := range vals {
			if maf.IsMissing(v) {
				continue
			}
			rows = append(rows, siteRow{
				Key:        series.Keys[i],
				Position:   series.Positions[i],
				Population: pop,
				Name:       names.Name(pop),
				MAF:        v,
			})
		}

		if printHist {
			if err := plot.Histogram(os.Stderr, names.Name(pop), vals, 10); err != nil {
				return err
			}
		}
	}

	if err := alfafreq.WriteTSV(STDOUT, rows); err != nil {
		return err
	}

	if summaryPath != "" {
		if err := writeSummary(ctx, summaryPath, series, names, keep); err != nil {
			return err
		}
	}

	if outputPath != "" {
		if opts.Title == "" {
			opts.Title = fmt.Sprintf("MAF across %s:%d-%d", locus.RefSeq, start, stop)
		}

		if err := alfafreq.WriteLocalOrGoogleStorage(ctx, outputPath, client, func(w io.Writer) error {
			return plot.Positions(w, series, names, keep, opts)
		}); err != nil {
			return err
		}
		log.Println("Wrote", outputPath)
	}

	return nil
}

func writeSummary(ctx context.Context, path string, series maf.Series, names alfafreq.PopulationMap, keep []string) error {
	summaries, err := maf.Summarize(series)
	if err != nil {
		return err
	}

	wanted := make(map[string]struct{}, len(keep))
	for _, v := range keep {
		wanted[v] = struct{}{}
	}

	out := make([]maf.Summary, 0, len(summaries))
	for _, s := range summaries {
		if _, exists := wanted[s.Population]; !exists {
			continue
		}
		s.Name = names.Name(s.Population)
		out = append(out, s)
	}

	return alfafreq.WriteLocalOrGoogleStorage(ctx, path, client, func(w io.Writer) error {
		return alfafreq.WriteTSV(w, out)
	})
}
