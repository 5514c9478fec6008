package main

import (
	"os"

	"github.com/luochenglcs/repotrust/xmldump"

	"github.com/urfave/cli"
)

var dumpCommand = cli.Command{
	Name:      "dump",
	Usage:     "print the raw XML token stream of a file",
	ArgsUsage: "FILE",
	Action: func(clicontext *cli.Context) error {
		if clicontext.NArg() != 1 {
			return cli.NewExitError("expected exactly one file", 2)
		}
		f, err := os.Open(clicontext.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		return xmldump.Dump(os.Stdout, f)
	},
}
