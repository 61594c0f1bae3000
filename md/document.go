package md

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	MarkdownTagTitle   = "title"
	MarkdownTagSummary = "summary"
	MarkdownTagSeed    = "seed"
	MarkdownTagSamples = "samples"
)

// A Document is a markdown body preceded by YAML front matter.
type Document struct {
	Encoder
	frontMatter map[string]any
}

func (b *Document) WriteTo(w io.Writer) (int64, error) {
	bb := new(bytes.Buffer)
	if len(b.frontMatter) > 0 {
		fm, err := yaml.Marshal(b.frontMatter)
		if err != nil {
			return 0, fmt.Errorf("encode front matter: %w", err)
		}
		bb.WriteString("---\n")
		bb.Write(fm)
		bb.WriteString("---\n")
	}

	n, err := bb.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write front matter: %w", err)
	}

	n1, err := b.Encoder.WriteTo(w)
	n += n1
	if err != nil {
		return n, fmt.Errorf("write body: %w", err)
	}

	return n, nil
}

func (b *Document) SetFrontMatterField(k string, v any) {
	if b.frontMatter == nil {
		b.frontMatter = make(map[string]any)
	}
	b.frontMatter[k] = v
}

func (b *Document) Title(s string) {
	b.SetFrontMatterField(MarkdownTagTitle, s)
}

func (b *Document) Summary(s string) {
	if s == "" {
		return
	}
	b.SetFrontMatterField(MarkdownTagSummary, s)
}
