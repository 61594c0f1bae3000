package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iand/r0unc/uncertain"
)

func TestLoadDistributions(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		want    func(*Distributions)
		err     bool
	}{
		{
			name: "no file",
			want: func(*Distributions) {},
		},
		{
			name:    "yaml",
			file:    "params.yaml",
			content: "b2: {mean: 0.012, deviation: 0.0002}\nga:\n  mean: 0.08\n",
			want: func(d *Distributions) {
				d.B2 = Dist{Mean: 0.012, Deviation: 0.0002}
				d.Ga.Mean = 0.08
			},
		},
		{
			name:    "json",
			file:    "params.json",
			content: `{"lifeExpectancy": {"deviation": 100}, "delta": {"mean": 0.6}}`,
			want: func(d *Distributions) {
				d.LifeExpectancy.Deviation = 100
				d.Delta.Mean = 0.6
			},
		},
		{
			name:    "empty yaml",
			file:    "empty.yml",
			content: "",
			want:    func(*Distributions) {},
		},
		{
			name:    "unknown parameter",
			file:    "params.yaml",
			content: "beta: {mean: 1}\n",
			err:     true,
		},
		{
			name:    "unknown field",
			file:    "params.json",
			content: `{"b": {"median": 1}}`,
			err:     true,
		},
		{
			name:    "negative deviation",
			file:    "params.yaml",
			content: "omega: {deviation: -0.1}\n",
			err:     true,
		},
		{
			name:    "deviation on fixed rate",
			file:    "params.yaml",
			content: "hs: {deviation: 0.01}\n",
			err:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var filename string
			if tc.file != "" {
				filename = filepath.Join(t.TempDir(), tc.file)
				if err := os.WriteFile(filename, []byte(tc.content), 0o666); err != nil {
					t.Fatalf("write: %v", err)
				}
			}

			got, err := LoadDistributions(filename)
			if tc.err {
				if err == nil {
					t.Fatalf("got no error, wanted one")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := Defaults()
			tc.want(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("LoadDistributions(%q) mismatch (-want +got):\n%s", tc.file, diff)
			}
		})
	}
}

func TestLoadDistributionsMissingFile(t *testing.T) {
	_, err := LoadDistributions(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got error %v, want os.ErrNotExist", err)
	}
}

func TestNewParameters(t *testing.T) {
	s := uncertain.NewSampler(2000, 1)
	d := Defaults()
	life, err := LifeExpectancy(s, d.LifeExpectancy, nil)
	if err != nil {
		t.Fatalf("LifeExpectancy: %v", err)
	}
	p, err := NewParameters(s, d, life)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}

	for _, f := range Fields {
		v, ok := p.Value(f.Name)
		if !ok {
			t.Fatalf("no value for %s", f.Name)
		}
		if v.IsConstant() != f.Fixed {
			t.Errorf("%s: IsConstant() = %v, want %v", f.Name, v.IsConstant(), f.Fixed)
		}
	}
	for name, want := range map[string]float64{"ga": 0.0714, "hs": 0.1, "ha": 0.05} {
		if v, _ := p.Value(name); v.Mean() != want {
			t.Errorf("%s = %g, want %g", name, v.Mean(), want)
		}
	}

	mu, _ := p.Value("mu")
	if got, want := mu.Mean(), 1/d.LifeExpectancy.Mean; got < want*0.999 || got > want*1.001 {
		t.Errorf("mu = %g, want close to %g", got, want)
	}
	if _, ok := p.Value("nonsense"); ok {
		t.Errorf("Value(nonsense) reported a parameter")
	}
}

func TestNewParametersInvalid(t *testing.T) {
	d := Defaults()
	d.Sigma.Deviation = -1

	s := uncertain.NewSampler(100, 1)
	_, err := NewParameters(s, d, uncertain.Constant(23725))
	var ipe *uncertain.InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("got error %v, want *uncertain.InvalidParameterError", err)
	}
	if ipe.Op != "sigma" {
		t.Errorf("Op = %q, want sigma", ipe.Op)
	}
}

func TestLifeExpectancyFromDays(t *testing.T) {
	s := uncertain.NewSampler(1000, 1)
	days := make([]float64, 20)
	for i := range days {
		days[i] = 80 * DaysPerYear
	}
	v, err := LifeExpectancy(s, Defaults().LifeExpectancy, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Mean() != 80*DaysPerYear {
		t.Errorf("Mean() = %g, want %d", v.Mean(), 80*DaysPerYear)
	}

	_, err = LifeExpectancy(s, Defaults().LifeExpectancy, []float64{})
	var ipe *uncertain.InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Errorf("got error %v for empty days, want *uncertain.InvalidParameterError", err)
	}
}
