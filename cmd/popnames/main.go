package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"sort"

	"github.com/carbocation/alfafreq"
	"github.com/carbocation/alfafreq/alfa"
	_ "github.com/carbocation/alfafreq/compileinfoprint"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

type populationRow struct {
	BiosampleID string `csv:"biosample_id"`
	Name        string `csv:"name"`
}

func main() {
	defer STDOUT.Flush()

	cfg := alfa.DefaultConfig()

	flag.StringVar(&cfg.BaseURL, "base_url", cfg.BaseURL, "Root of the Variation Services API")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Give up after this long")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log every request?")
	flag.Parse()

	if err := run(context.Background(), alfa.New(cfg)); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, api *alfa.Client) error {
	names, err := api.Populations(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]populationRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, populationRow{BiosampleID: id, Name: names[id]})
	}

	log.Println("Found", len(rows), "populations")

	return alfafreq.WriteTSV(STDOUT, rows)
}
