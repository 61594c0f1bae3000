// Package report writes estimates and their distributions for people to read.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/iand/r0unc/md"
	"github.com/iand/r0unc/model"
	"github.com/iand/r0unc/uncertain"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat returns the format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// An Entry is a named value to describe.
type Entry struct {
	Name  string
	Value uncertain.Value
}

// Run describes how the values of a report were produced.
type Run struct {
	Samples int
	Seed    uint64
	Source  string // where life expectancy came from
}

// WriteR0 writes the mean of r0 in the form "R0 = 0.865904". Six decimals
// are used unless the mean is so small that they would hold fewer than six
// significant digits.
func WriteR0(w io.Writer, r0 uncertain.Value) error {
	m := r0.Mean()
	if m != 0 && math.Abs(m) < 0.1 {
		_, err := fmt.Fprintf(w, "R0 = %s\n", strconv.FormatFloat(m, 'g', 6, 64))
		return err
	}
	_, err := fmt.Fprintf(w, "R0 = %f\n", m)
	return err
}

// WriteSummaries describes the distribution of each entry.
func WriteSummaries(w io.Writer, f Format, run Run, entries []Entry) error {
	switch f {
	case FormatMarkdown:
		return writeMarkdownSummaries(w, run, entries)
	case FormatText, "":
		return writeTextSummaries(w, run, entries)
	}
	return fmt.Errorf("unsupported format: %s", f)
}

func quantileLabel(p float64) string {
	if p == 0.5 {
		return "median"
	}
	return strconv.FormatFloat(p*100, 'g', 4, 64) + "%ile"
}

func writeTextSummaries(w io.Writer, run Run, entries []Entry) error {
	b := new(strings.Builder)
	fmt.Fprintf(b, "%d samples, seed %d, life expectancy from %s\n", run.Samples, run.Seed, run.Source)
	for _, e := range entries {
		s := e.Value.Summarize()
		fmt.Fprintf(b, "\n%s\n", e.Name)
		fmt.Fprintf(b, "  N %d  mean %.6g  std dev %.6g", s.N, s.Mean, s.StdDev)
		if s.NaN > 0 {
			fmt.Fprintf(b, "  NaN %d", s.NaN)
		}
		b.WriteString("\n")

		fmt.Fprintf(b, "%10s %.6g\n", "min", s.Min)
		for _, q := range s.Quantiles {
			fmt.Fprintf(b, "%10s %.6g\n", quantileLabel(q.X), q.Y)
		}
		fmt.Fprintf(b, "%10s %.6g\n", "max", s.Max)

		if len(s.Density) > 0 {
			b.WriteString("  density\n")
			for _, p := range s.Density {
				fmt.Fprintf(b, "%12.6g %.6g\n", p.X, p.Y)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownSummaries(w io.Writer, run Run, entries []Entry) error {
	doc := new(md.Document)
	doc.Title("Basic reproduction number")
	doc.Summary("life expectancy from " + run.Source)
	doc.SetFrontMatterField(md.MarkdownTagSamples, run.Samples)
	doc.SetFrontMatterField(md.MarkdownTagSeed, run.Seed)
	doc.Para(fmt.Sprintf("Estimated from %d draws with seed %d, life expectancy from %s.", run.Samples, run.Seed, doc.EncodeCode(run.Source)))

	for _, e := range entries {
		s := e.Value.Summarize()
		doc.Heading2(e.Name)
		if s.NaN > 0 {
			doc.Para(doc.EncodeBold("Note:") + fmt.Sprintf(" %d of %d draws are NaN and excluded from the statistics.", s.NaN, s.N))
			doc.Para("")
		}

		rows := [][]string{
			{"N", strconv.Itoa(s.N)},
			{"mean", num(s.Mean)},
			{"std dev", num(s.StdDev)},
			{"min", num(s.Min)},
		}
		for _, q := range s.Quantiles {
			rows = append(rows, []string{quantileLabel(q.X), num(q.Y)})
		}
		rows = append(rows, []string{"max", num(s.Max)})
		if s.NaN > 0 {
			rows = append(rows, []string{"NaN", strconv.Itoa(s.NaN)})
		}
		doc.Table([]string{"statistic", "value"}, []bool{false, true}, rows)

		if len(s.Density) > 0 {
			doc.Heading3("Density")
			rows := make([][]string, 0, len(s.Density))
			for _, p := range s.Density {
				rows = append(rows, []string{num(p.X), num(p.Y)})
			}
			doc.Table([]string{"x", "density"}, []bool{true, true}, rows)
		}
	}

	_, err := doc.WriteTo(w)
	return err
}

// WriteParameters lists the distribution of every model input.
func WriteParameters(w io.Writer, f Format, d model.Distributions) error {
	header := []string{"name", "mean", "deviation", "description"}
	var rows [][]string
	for _, field := range model.Fields {
		dist, _ := d.Get(field.Name)
		dev := num(dist.Deviation)
		if field.Fixed {
			dev = "fixed"
		}
		rows = append(rows, []string{field.Name, num(dist.Mean), dev, field.Usage})
	}

	switch f {
	case FormatMarkdown:
		doc := new(md.Document)
		doc.Title("Model parameters")
		doc.Table(header, []bool{false, true, true, false}, rows)
		_, err := doc.WriteTo(w)
		return err
	case FormatText, "":
		b := new(strings.Builder)
		fmt.Fprintf(b, "%-16s %12s %12s  %s\n", header[0], header[1], header[2], header[3])
		for _, r := range rows {
			fmt.Fprintf(b, "%-16s %12s %12s  %s\n", r[0], r[1], r[2], r[3])
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
	return fmt.Errorf("unsupported format: %s", f)
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}
