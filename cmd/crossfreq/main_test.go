package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/alfafreq/alfa"
	"github.com/carbocation/alfafreq/chrpos"
	"github.com/carbocation/alfafreq/plot"
	"github.com/gorilla/mux"
)

const intervalBody = `{"results": {
	"NC_000007.14@100": {"counts": {"PRJNA507278": {"allele_counts": {
		"SAMN10492695": {"A": 4, "G": 6},
		"SAMN10492703": {"A": 6, "G": 4}
	}}}},
	"NC_000007.14@200": {"counts": {"PRJNA507278": {"allele_counts": {
		"SAMN10492695": {"A": 2, "G": 8},
		"SAMN10492703": {"A": 3, "G": 7}
	}}}},
	"NC_000007.14@300": {"counts": {"PRJNA507278": {"allele_counts": {
		"SAMN10492695": {"A": 5, "G": 5},
		"SAMN10492703": {"A": 0, "G": 0}
	}}}}
}}`

func TestRun(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/interval/{interval}/overlapping_frequency_records", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(intervalBody))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	api := alfa.New(alfa.Config{BaseURL: srv.URL, RequestsPerSecond: -1, HTTPClient: srv.Client()})

	dir := t.TempDir()
	plotPath := filepath.Join(dir, "cross.svg")
	corrPath := filepath.Join(dir, "corr.tsv")

	err := run(context.Background(), api, chrpos.Locus{RefSeq: "NC_000007.14"}, 100, 300, 0,
		"SAMN10492695", "SAMN10492703", plotPath, corrPath, plot.Options{Format: "svg"}, false)
	if err != nil {
		t.Fatal(err)
	}

	svg, err := os.ReadFile(plotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Fatalf("Expected an SVG at %s", plotPath)
	}

	corr, err := os.ReadFile(corrPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(corr)), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "A\t2\t") || !strings.HasPrefix(lines[2], "G\t2\t") {
		t.Fatalf("Unexpected correlation table %q", corr)
	}
}
