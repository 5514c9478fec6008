package main

import (
	"fmt"
	"os"

	"github.com/luochenglcs/repotrust/config"
	"github.com/luochenglcs/repotrust/repolog"
	"github.com/luochenglcs/repotrust/version"

	"github.com/urfave/cli"
)

var conf = config.Default()

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, version.Full())
	}
	app := cli.NewApp()
	app.Name = "repotrust"
	app.Usage = "inspect and verify yum/dnf repository metadata"
	app.Version = version.String()
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to the repotrust configuration file",
			Value: config.DefaultPath,
		},
		cli.StringFlag{
			Name:  "loglevel",
			Usage: "debug, info, warn or error (overrides the config file)",
		},
		cli.StringFlag{
			Name:  "logfile",
			Usage: "append log output to this file instead of stderr",
		},
	}
	app.Before = setup
	app.After = func(*cli.Context) error {
		repolog.L.Close()
		return nil
	}
	app.Commands = []cli.Command{
		parseCommand,
		verifyCommand,
		dumpCommand,
		reposCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "repotrust:", err)
		os.Exit(1)
	}
}

func setup(clicontext *cli.Context) error {
	var err error
	conf, err = config.Load(clicontext.GlobalString("config"))
	if err != nil {
		return err
	}
	if lv := clicontext.GlobalString("loglevel"); lv != "" {
		conf.LogLevel = lv
	}
	if lf := clicontext.GlobalString("logfile"); lf != "" {
		conf.LogFile = lf
	}

	level, err := repolog.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	logger, err := repolog.NewLogger(level, conf.LogFile)
	if err != nil {
		return err
	}
	repolog.L = logger
	repolog.L.Debug("config: %+v", conf)
	return nil
}
