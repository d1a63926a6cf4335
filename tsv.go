package alfafreq

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// WriteTSV writes rows, a slice of structs with csv tags, to w as
// tab-delimited text with a header line.
func WriteTSV(w io.Writer, rows interface{}) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}
