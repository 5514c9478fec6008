package main

import (
	"fmt"
	"os"

	"github.com/luochenglcs/repotrust/repodata"
	"github.com/luochenglcs/repotrust/repolog"

	"github.com/urfave/cli"
)

var parseCommand = cli.Command{
	Name:      "parse",
	Usage:     "parse a repomd.xml and print its entries",
	ArgsUsage: "FILE",
	Action:    parseIndex,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "xml",
			Usage: "print the canonical XML form instead of the report",
		},
	},
}

func loadIndex(clicontext *cli.Context) (repodata.Repomd, error) {
	if clicontext.NArg() != 1 {
		return repodata.Repomd{}, cli.NewExitError("expected exactly one repomd.xml path", 2)
	}
	path := clicontext.Args().First()
	f, err := os.Open(path)
	if err != nil {
		return repodata.Repomd{}, err
	}
	defer f.Close()

	md, err := repodata.ParseReader(f)
	if err != nil {
		return repodata.Repomd{}, fmt.Errorf("read %s: %w", path, err)
	}
	repolog.L.Info("parsed %s: revision %d, %d entries", path, md.Revision, len(md.Data))
	for _, warn := range md.Warnings() {
		repolog.L.Warn("%s: %s", path, warn)
	}
	return md, nil
}

func parseIndex(clicontext *cli.Context) error {
	md, err := loadIndex(clicontext)
	if err != nil {
		return err
	}
	if clicontext.Bool("xml") {
		out, err := repodata.Marshal(md, repodata.Options{Indent: true, Declaration: true})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	return repodata.Report(os.Stdout, md)
}
