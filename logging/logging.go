package logging

import (
	"context"
	"golang.org/x/exp/slog"

	"github.com/iand/pontium/hlog"
	"github.com/kortschak/utter"
	"github.com/urfave/cli/v2"
)

// Flags returns the logging flags. Commands and the application each take
// their own copy.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Set logging level more verbose to include info level logs",
		},
		&cli.BoolFlag{
			Name:    "veryverbose",
			Aliases: []string{"vv"},
			Usage:   "Set logging level more verbose to include debug level logs",
		},
		&cli.StringSliceFlag{
			Name:  "log-ids",
			Usage: "Always emit debug logging for these parameter names, comma separated",
		},
	}
}

// Setup installs the default logger. Logs are emitted at warn level unless
// raised by the verbosity flags, which may be given to the application or
// to the command. Records carrying an id attribute named in --log-ids are
// always emitted at debug level.
func Setup(cc *cli.Context) {
	var verbose, veryVerbose bool
	var ids []string
	for _, c := range cc.Lineage() {
		verbose = verbose || c.Bool("verbose")
		veryVerbose = veryVerbose || c.Bool("veryverbose")
		ids = append(ids, c.StringSlice("log-ids")...)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	if veryVerbose {
		level = slog.LevelDebug
	}

	h := new(hlog.Handler)
	h = h.WithLevel(level)
	for _, id := range ids {
		h = h.WithAttrLevel(slog.String("id", id), slog.LevelDebug)
	}

	slog.SetDefault(slog.New(h))
}

var (
	Debug = slog.Debug
	Info  = slog.Info
	Warn  = slog.Warn
)

// Dump logs a detailed rendering of v at debug level.
func Dump(msg string, v any) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug(msg, "value", utter.Sdump(v))
}
