package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

type override struct {
	Mean      *float64 `json:"mean" yaml:"mean"`
	Deviation *float64 `json:"deviation" yaml:"deviation"`
}

// LoadDistributions returns the default distributions with any overrides
// read from filename applied. Files ending in .yaml or .yml are read as
// YAML, anything else as JSON. Each top level key names a field, for
// example:
//
//	b2: {mean: 0.012, deviation: 0.0002}
//	ga: {mean: 0.08}
//
// An empty filename returns the defaults.
func LoadDistributions(filename string) (Distributions, error) {
	d := Defaults()
	if filename == "" {
		return d, nil
	}

	slog.Info("reading parameter overrides", "filename", filename)
	f, err := os.Open(filename)
	if err != nil {
		return Distributions{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var overrides map[string]override
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = decodeYAML(f, &overrides)
	default:
		err = decodeJSON(f, &overrides)
	}
	if err != nil {
		return Distributions{}, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := d.apply(overrides); err != nil {
		return Distributions{}, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

func decodeYAML(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (d *Distributions) apply(overrides map[string]override) error {
	for name, o := range overrides {
		var target *Dist
		for _, f := range Fields {
			if f.Name == name {
				target = f.get(d)
				break
			}
		}
		if target == nil {
			return fmt.Errorf("unknown parameter %q", name)
		}
		if o.Mean != nil {
			target.Mean = *o.Mean
		}
		if o.Deviation != nil {
			target.Deviation = *o.Deviation
		}
		slog.Debug("parameter override", "id", name, "mean", target.Mean, "deviation", target.Deviation)
	}
	return d.Validate()
}
