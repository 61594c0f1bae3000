package md

import (
	"bufio"
	"io"
	"strings"
)

// An Encoder accumulates a markdown body.
type Encoder struct {
	main strings.Builder
}

func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	n, err := bw.WriteString(e.main.String())
	if err != nil {
		return int64(n), err
	}
	return int64(n), bw.Flush()
}

func (e *Encoder) Heading2(s string) {
	e.main.WriteString("\n")
	e.main.WriteString("## " + s)
	e.main.WriteString("\n\n")
}

func (e *Encoder) Heading3(s string) {
	e.main.WriteString("\n")
	e.main.WriteString("### " + s)
	e.main.WriteString("\n\n")
}

func (e *Encoder) Para(s string) {
	e.main.WriteString(s)
	e.main.WriteString("\n")
}

func (e *Encoder) EncodeBold(s string) string {
	return "**" + s + "**"
}

func (e *Encoder) EncodeCode(s string) string {
	return "`" + s + "`"
}

// Table writes a pipe table. rightAlign marks the columns to align right,
// usually those holding numbers.
func (e *Encoder) Table(header []string, rightAlign []bool, rows [][]string) {
	e.writeRow(header)

	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
		if i < len(rightAlign) && rightAlign[i] {
			seps[i] = "--:"
		}
	}
	e.writeRow(seps)

	for _, row := range rows {
		e.writeRow(row)
	}
	e.main.WriteString("\n")
}

func (e *Encoder) writeRow(cells []string) {
	e.main.WriteString("|")
	for _, c := range cells {
		e.main.WriteString(" ")
		e.main.WriteString(strings.ReplaceAll(c, "|", `\|`))
		e.main.WriteString(" |")
	}
	e.main.WriteString("\n")
}
