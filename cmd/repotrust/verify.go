package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/luochenglcs/repotrust/source"

	"github.com/urfave/cli"
)

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "verify mirrored metadata files against repomd.xml",
	ArgsUsage: "FILE",
	Action:    verifyMirror,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "root",
			Usage: "mirror root that locations are relative to",
			Value: ".",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of artifacts hashed in parallel (default from config)",
		},
	},
}

func verifyMirror(clicontext *cli.Context) error {
	md, err := loadIndex(clicontext)
	if err != nil {
		return err
	}
	workers := conf.Workers
	if n := clicontext.Int("workers"); n > 0 {
		workers = n
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results := source.VerifyTree(ctx, clicontext.String("root"), md, workers)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Type\tLocation\tResult")
	untrusted := 0
	for _, res := range results {
		verdict := "trusted"
		if !res.Trusted() {
			verdict = "UNTRUSTED: " + res.Err.Error()
			untrusted++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", res.Kind, res.Location, verdict)
	}
	w.Flush()

	if untrusted > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d artifacts untrusted", untrusted, len(results)), 1)
	}
	return nil
}
