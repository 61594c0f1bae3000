package estimate

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/iand/r0unc/logging"
	"github.com/iand/r0unc/model"
	"github.com/iand/r0unc/report"
)

var ParamsCommand = &cli.Command{
	Name:   "params",
	Usage:  "List the distribution of every model parameter",
	Action: paramsCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "params",
			Aliases: []string{"p"},
			Usage:   "YAML or JSON file overriding parameter means and deviations",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format, one of 'text' or 'markdown'",
			Value: string(report.FormatText),
		},
	}, logging.Flags()...),
}

func paramsCmd(cc *cli.Context) error {
	logging.Setup(cc)

	format, err := report.ParseFormat(flagContext(cc, "format").String("format"))
	if err != nil {
		return err
	}

	d, err := model.LoadDistributions(flagContext(cc, "params", "p").String("params"))
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}

	return report.WriteParameters(cc.App.Writer, format, d)
}
