// Package plot renders MAF series and cross-population frequency comparisons
// as scatter plots.
package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/alfafreq"
	"github.com/carbocation/alfafreq/maf"
	"github.com/wcharczuk/go-chart/v2"
)

// Options controls the rendered image. Zero values fall back to defaults.
type Options struct {
	Title  string
	Width  int
	Height int

	// Format is "png" or "svg".
	Format string

	// DotWidth is the radius of each point, in pixels.
	DotWidth float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 768
	}
	if o.Format == "" {
		o.Format = "png"
	}
	if o.DotWidth <= 0 {
		o.DotWidth = 3
	}

	return o
}

func (o Options) renderer() (chart.RendererProvider, error) {
	switch strings.ToLower(o.Format) {
	case "png":
		return chart.PNG, nil
	case "svg":
		return chart.SVG, nil
	}

	return nil, fmt.Errorf("Unknown image format %q; expected png or svg", o.Format)
}

// FormatForPath picks the image format from a file name's extension.
func FormatForPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		return "svg"
	}

	return "png"
}

func scatter(name string, x, y []float64, index int, dotWidth float64) chart.ContinuousSeries {
	color := chart.GetDefaultColor(index)

	return chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    dotWidth,
			DotColor:    color,
			StrokeColor: color,
		},
		XValues: x,
		YValues: y,
	}
}

// Positions draws one scatter series per population: genomic position on the
// x axis, MAF on the y axis. Positions where a population has no counts are
// left out. Populations with no points at all are not drawn. names may be nil.
func Positions(w io.Writer, s maf.Series, names alfafreq.PopulationMap, populations []string, opts Options) error {
	opts = opts.withDefaults()

	rp, err := opts.renderer()
	if err != nil {
		return err
	}

	if len(populations) == 0 {
		populations = s.Populations()
	}

	series := make([]chart.Series, 0, len(populations))
	minX, maxX := 0.0, 0.0
	for _, pop := range populations {
		positions, values := s.Points(pop)
		if len(positions) == 0 {
			continue
		}

		x := make([]float64, 0, len(positions))
		for _, p := range positions {
			fp := float64(p)
			if len(series) == 0 && len(x) == 0 {
				minX, maxX = fp, fp
			}
			if fp < minX {
				minX = fp
			}
			if fp > maxX {
				maxX = fp
			}
			x = append(x, fp)
		}

		series = append(series, scatter(names.Name(pop), x, values, len(series), opts.DotWidth))
	}

	if len(series) == 0 {
		return fmt.Errorf("No population had any MAF values to plot")
	}

	// go-chart refuses a zero-width range.
	if minX == maxX {
		minX--
		maxX++
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Position",
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
			ValueFormatter: positionFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "MAF",
			Range: &chart.ContinuousRange{Min: 0, Max: 0.5},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph.Render(rp, w)
}

// Cross draws one scatter series per allele: frequency in the X population
// against frequency in the Y population, both on [0, 1].
func Cross(w io.Writer, res maf.CrossResult, xName, yName string, opts Options) error {
	opts = opts.withDefaults()

	rp, err := opts.renderer()
	if err != nil {
		return err
	}

	series := make([]chart.Series, 0, len(res.X))
	for _, allele := range res.Alleles() {
		if res.Pairs(allele) == 0 {
			continue
		}
		series = append(series, scatter(allele, res.X[allele], res.Y[allele], len(series), opts.DotWidth))
	}

	if len(series) == 0 {
		return fmt.Errorf("No allele had frequencies in both %s and %s", xName, yName)
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  xName,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph.Render(rp, w)
}

func positionFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}

	return fmt.Sprintf("%v", v)
}
