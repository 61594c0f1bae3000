package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iand/r0unc/model"
	"github.com/iand/r0unc/uncertain"
)

func TestWriteR0(t *testing.T) {
	testCases := []struct {
		v    uncertain.Value
		want string
	}{
		{v: uncertain.Constant(0.86590431), want: "R0 = 0.865904\n"},
		{v: uncertain.Constant(2), want: "R0 = 2.000000\n"},
		{v: uncertain.Constant(12.3456789), want: "R0 = 12.345679\n"},
		{v: uncertain.Constant(0.1), want: "R0 = 0.100000\n"},
		{v: uncertain.Constant(0.00123456789), want: "R0 = 0.00123457\n"},
		{v: uncertain.Constant(-0.0421), want: "R0 = -0.0421\n"},
		{v: uncertain.Constant(0), want: "R0 = 0.000000\n"},
	}

	for _, tc := range testCases {
		buf := new(bytes.Buffer)
		if err := WriteR0(buf, tc.v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
			t.Errorf("WriteR0(%v) mismatch (-want +got):\n%s", tc.v, diff)
		}
	}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		s    string
		want Format
		err  bool
	}{
		{s: "text", want: FormatText},
		{s: "Markdown", want: FormatMarkdown},
		{s: "html", err: true},
	}

	for _, tc := range testCases {
		got, err := ParseFormat(tc.s)
		if tc.err != (err != nil) {
			t.Errorf("ParseFormat(%q) error = %v, want error %v", tc.s, err, tc.err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.s, got, tc.want)
		}
	}
}

func TestWriteSummaries(t *testing.T) {
	s := uncertain.NewSampler(2000, 1)
	v, err := s.Gaussian(0.87, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	z, err := s.Gaussian(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := []Entry{
		{Name: "R0", Value: v},
		{Name: "ga", Value: uncertain.Constant(0.0714)},
		{Name: "root", Value: uncertain.Sqrt(z)},
	}
	run := Run{Samples: 2000, Seed: 1, Source: "gaussian fallback"}

	testCases := []struct {
		format Format
		want   []string
	}{
		{
			format: FormatText,
			want: []string{
				"2000 samples, seed 1, life expectancy from gaussian fallback\n",
				"\nR0\n  N 2000  mean ",
				"    median ",
				"   2.5%ile ",
				"  density\n",
				"\nga\n  N 1  mean 0.0714  std dev 0\n",
				"\nroot\n  N 2000  mean ",
				"  NaN ",
			},
		},
		{
			format: FormatMarkdown,
			want: []string{
				"---\nsamples: 2000\nseed: 1\nsummary: life expectancy from gaussian fallback\ntitle: Basic reproduction number\n---\n" +
					"Estimated from 2000 draws with seed 1, life expectancy from `gaussian fallback`.\n",
				"\n## R0\n\n| statistic | value |\n| --- | --: |\n| N | 2000 |\n",
				"### Density",
				"| median | 0.0714 |",
				"\n## root\n\n**Note:** ",
				" of 2000 draws are NaN and excluded from the statistics.\n\n| statistic | value |",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			buf := new(bytes.Buffer)
			if err := WriteSummaries(buf, tc.format, run, entries); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tc.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output does not contain %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestWriteParameters(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := WriteParameters(buf, FormatText, model.Defaults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(model.Fields)+1 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(model.Fields)+1, buf.String())
	}
	for _, name := range []string{"ga", "hs", "ha"} {
		var found bool
		for _, l := range lines {
			if strings.HasPrefix(l, name+" ") {
				found = true
				if !strings.Contains(l, "fixed") {
					t.Errorf("%s is not reported as fixed: %q", name, l)
				}
			}
		}
		if !found {
			t.Errorf("no line for %s", name)
		}
	}

	buf.Reset()
	if err := WriteParameters(buf, FormatMarkdown, model.Defaults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "| lifeExpectancy | 23725 | 40 | human life expectancy (days) |"; !strings.Contains(buf.String(), want) {
		t.Errorf("markdown output does not contain %q:\n%s", want, buf.String())
	}
}
