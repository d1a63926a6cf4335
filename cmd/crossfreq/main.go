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

type pairRow struct {
	Allele string  `csv:"allele"`
	X      float64 `csv:"x_freq"`
	Y      float64 `csv:"y_freq"`
}

type correlationRow struct {
	Allele  string  `csv:"allele"`
	Pairs   int     `csv:"pairs"`
	Pearson float64 `csv:"pearson_r"`
}

func main() {
	defer STDOUT.Flush()

	var (
		seqID, chromosome, assembly string
		start, stop, chunk          int
		xPop, yPop                  string
		outputPath, corrPath        string
		title                       string
		width, height               int
		resolveNames                bool
		cfg                         = alfa.DefaultConfig()
	)

	flag.StringVar(&seqID, "seq", "", "RefSeq accession of the sequence, e.g., NC_000007.14. Alternatively, use -chrom.")
	flag.StringVar(&chromosome, "chrom", "", "Chromosome name (e.g., 7 or chr7), resolved with -assembly. Ignored if -seq is set.")
	flag.StringVar(&assembly, "assembly", "grch38", "Assembly used to resolve -chrom: grch37 or grch38")
	flag.IntVar(&start, "start", -1, "First position of the interval (inclusive)")
	flag.IntVar(&stop, "stop", -1, "Last position of the interval (inclusive)")
	flag.IntVar(&chunk, "chunk", 0, "(Optional) Split the interval into windows of this many positions, fetched one after another")
	flag.StringVar(&xPop, "x", "", "Biosample ID of the population on the x axis, e.g., SAMN10492695")
	flag.StringVar(&yPop, "y", "", "Biosample ID of the population on the y axis, e.g., SAMN10492703")
	flag.StringVar(&outputPath, "output", "", "(Optional) Path to the scatter plot, .png or .svg. May be a gs:// path.")
	flag.StringVar(&corrPath, "correlation", "", "(Optional) Path to a per-allele Pearson correlation TSV. May be a gs:// path.")
	flag.StringVar(&title, "title", "", "(Optional) Plot title")
	flag.IntVar(&width, "width", 768, "Plot width in pixels")
	flag.IntVar(&height, "height", 768, "Plot height in pixels")
	flag.BoolVar(&resolveNames, "names", true, "Fetch population metadata to label the axes by population name?")
	flag.StringVar(&cfg.BaseURL, "base_url", cfg.BaseURL, "Root of the Variation Services API")
	flag.IntVar(&cfg.MaxPages, "max_pages", cfg.MaxPages, "Give up after this many pages per window")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Give up on a window after this long")
	flag.Float64Var(&cfg.RequestsPerSecond, "rps", cfg.RequestsPerSecond, "Maximum requests per second")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log every request?")
	flag.Parse()

	if (seqID == "" && chromosome == "") || start < 0 || stop < 0 || xPop == "" || yPop == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide -seq (or -chrom), -start, -stop, -x and -y")
	}

	if strings.HasPrefix(outputPath, "gs://") || strings.HasPrefix(corrPath, "gs://") {
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

	if err := run(context.Background(), alfa.New(cfg), locus, start, stop, chunk, xPop, yPop, outputPath, corrPath, opts, resolveNames); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, api *alfa.Client, locus chrpos.Locus, start, stop, chunk int, xPop, yPop, outputPath, corrPath string, opts plot.Options, resolveNames bool) error {
	data, err := api.FetchLocus(ctx, locus, start, stop, chunk)
	if err != nil {
		return err
	}
	log.Printf("Fetched %d records from %s:%d-%d\n", len(data), locus.RefSeq, start, stop)

	res, err := maf.Cross(data, xPop, yPop)
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
	xName, yName := names.Name(xPop), names.Name(yPop)

	rows := make([]pairRow, 0)
	correlations := make([]correlationRow, 0)
	for _, allele := range res.Alleles() {
		for i := range res.X[allele] {
			rows = append(rows, pairRow{Allele: allele, X: res.X[allele][i], Y: res.Y[allele][i]})
		}

		if r, ok := res.Correlation(allele); ok {
			log.Printf("Allele %s: Pearson r=%.3f between %s and %s over %d pairs\n", allele, r, xName, yName, res.Pairs(allele))
			correlations = append(correlations, correlationRow{Allele: allele, Pairs: res.Pairs(allele), Pearson: r})
		}
	}

	if err := alfafreq.WriteTSV(STDOUT, rows); err != nil {
		return err
	}

	if corrPath != "" {
		if err := alfafreq.WriteLocalOrGoogleStorage(ctx, corrPath, client, func(w io.Writer) error {
			return alfafreq.WriteTSV(w, correlations)
		}); err != nil {
			return err
		}
	}

	if outputPath != "" {
		if opts.Title == "" {
			opts.Title = fmt.Sprintf("Allele frequencies, %s:%d-%d", locus.RefSeq, start, stop)
		}

		if err := alfafreq.WriteLocalOrGoogleStorage(ctx, outputPath, client, func(w io.Writer) error {
			return plot.Cross(w, res, xName, yName, opts)
		}); err != nil {
			return err
		}
		log.Println("Wrote", outputPath)
	}

	return nil
}
