/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/iand/r0unc/estimate"
)

func main() {
	app := &cli.App{
		Name:        "r0unc",
		HelpName:    "r0unc",
		Usage:       "Estimate the basic reproduction number of an epidemic with an environmental reservoir, propagating parameter uncertainty",
		ArgsUsage:   "[life-expectancy-file]",
		Description: estimate.Description,
		Action:      estimate.Action,
		Flags:       estimate.Flags(),
		Commands: []*cli.Command{
			estimate.Command,
			estimate.ParamsCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
