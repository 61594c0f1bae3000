/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package estimate

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"

	"github.com/iand/r0unc/lifeexp"
	"github.com/iand/r0unc/logging"
	"github.com/iand/r0unc/model"
	"github.com/iand/r0unc/report"
	"github.com/iand/r0unc/uncertain"
)

type options struct {
	paramsFile string
	samples    int
	seed       uint64
	workers    int
	summary    bool
	format     string
}

// Flags are the flags of the r0 command. The application uses them too so
// that the command is the default action.
func Flags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    "params",
			Aliases: []string{"p"},
			Usage:   "YAML or JSON file overriding parameter means and deviations",
		},
		&cli.IntFlag{
			Name:    "samples",
			Aliases: []string{"n"},
			Usage:   "number of Monte Carlo draws backing each uncertain value",
			Value:   uncertain.DefaultSampleCount,
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "seed for the random streams, the same seed reproduces the same estimate",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of goroutines generating draws, does not change the result",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:    "summary",
			Aliases: []string{"s"},
			Usage:   "describe the distribution of R0 and its human and environmental terms",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "format of the summary, one of 'text' or 'markdown'",
			Value: string(report.FormatText),
		},
	}, logging.Flags()...)
}

// Description explains how the optional life expectancy file is given.
const Description = "Without a life expectancy file the fallback distribution is used.\nA file whose name is also a command name must be given as a path, such as ./r0."

var Command = &cli.Command{
	Name:        "r0",
	Usage:       "Estimate the basic reproduction number and its uncertainty",
	ArgsUsage:   "[life-expectancy-file]",
	Description: Description,
	Action:      Action,
	Flags:       Flags(),
}

// Action runs the r0 command.
func Action(cc *cli.Context) error {
	logging.Setup(cc)

	if cc.NArg() > 1 {
		return fmt.Errorf("expected at most one life expectancy file, got %d arguments", cc.NArg())
	}
	return run(cc.App.Writer, optionsFrom(cc), cc.Args().First())
}

// optionsFrom reads the r0 flags. A flag given to the command wins over the
// same flag given to the application.
func optionsFrom(cc *cli.Context) options {
	return options{
		paramsFile: flagContext(cc, "params", "p").String("params"),
		samples:    flagContext(cc, "samples", "n").Int("samples"),
		seed:       flagContext(cc, "seed").Uint64("seed"),
		workers:    flagContext(cc, "workers").Int("workers"),
		summary:    flagContext(cc, "summary", "s").Bool("summary"),
		format:     flagContext(cc, "format").String("format"),
	}
}

// flagContext returns the innermost context in the lineage of cc where the
// flag known by names was given, or cc when it was not given anywhere.
func flagContext(cc *cli.Context, names ...string) *cli.Context {
	for _, c := range cc.Lineage() {
		for _, n := range c.LocalFlagNames() {
			if slices.Contains(names, n) {
				return c
			}
		}
	}
	return cc
}

func run(w io.Writer, opts options, lifeFile string) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", opts.samples)
	}

	d, err := model.LoadDistributions(opts.paramsFile)
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}
	logging.Dump("distributions", d)

	// A table that cannot be opened is reported on stdout and is not a
	// failure: existing automation depends on the zero exit status.
	var days []float64
	source := "gaussian fallback"
	if lifeFile != "" {
		days, err = lifeexp.Load(lifeFile)
		if err != nil {
			var foe *lifeexp.FileOpenError
			if errors.As(err, &foe) {
				logging.Warn("could not open life expectancy table", "filename", lifeFile, "error", foe.Err)
				_, err := fmt.Fprintf(w, "Could not open %s input file!\n", lifeFile)
				return err
			}
			return fmt.Errorf("load life expectancy: %w", err)
		}
		source = lifeFile
	}

	s := uncertain.NewSampler(opts.samples, opts.seed)
	s.Workers = opts.workers

	life, err := model.LifeExpectancy(s, d.LifeExpectancy, days)
	if err != nil {
		return err
	}
	logging.Info("life expectancy", "id", "lifeExpectancy", "value", life, "source", source)

	p, err := model.NewParameters(s, d, life)
	if p == nil {
		return fmt.Errorf("build parameters: %w", err)
	}
	warnRisk(err)

	for _, f := range model.Fields {
		v, _ := p.Value(f.Name)
		logging.Debug("parameter", "id", f.Name, "value", v)
	}

	c, err := model.Evaluate(p)
	warnRisk(err)

	if err := report.WriteR0(w, c.R0); err != nil {
		return err
	}

	if !opts.summary {
		return nil
	}
	meta := report.Run{Samples: opts.samples, Seed: opts.seed, Source: source}
	return report.WriteSummaries(w, format, meta, []report.Entry{
		{Name: "R0", Value: c.R0},
		{Name: "rh", Value: c.RH},
		{Name: "rp", Value: c.RP},
	})
}

func warnRisk(err error) {
	if err == nil {
		return
	}
	var risk *uncertain.DivisionByZeroRisk
	if errors.As(err, &risk) {
		logging.Warn("division by an uncertain value close to zero", "error", err)
		return
	}
	logging.Warn("unexpected advisory", "error", err)
}
