package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/luochenglcs/repotrust/config"

	"github.com/urfave/cli"
)

var reposCommand = cli.Command{
	Name:   "repos",
	Usage:  "list configured repositories and where their repomd.xml lives",
	Action: listRepos,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "all",
			Usage: "include disabled repositories",
		},
	},
}

func listRepos(clicontext *cli.Context) error {
	repos, err := config.LoadRepos(conf.ReposDir, conf.Vars())
	if err != nil {
		return err
	}
	list := config.Enabled(repos)
	if clicontext.Bool("all") {
		list = config.All(repos)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Repository\tEnabled\tGPGCheck\tRepomd")
	for _, rc := range list {
		fmt.Fprintf(w, "%s\t%t\t%t\t%s\n", rc.Name, rc.Enabled, rc.GPGCheck, rc.RepomdURL())
	}
	return w.Flush()
}
