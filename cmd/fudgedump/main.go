package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/wippyai/fudge"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "TOML settings file",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log codec activity to stderr",
	}
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "Path of the encoded envelope",
	}
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "fudgedump"
	app.Usage = "Inspect, browse and build Fudge encoded messages"
	app.Version = "v0.1.0"
	app.Flags = []cli.Flag{configFlag, verboseFlag}

	cfg := DefaultConfig()
	app.Before = func(c *cli.Context) error {
		if path := c.GlobalString("config"); path != "" {
			loaded, err := LoadConfig(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if c.GlobalBool("verbose") {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			fudge.SetLogger(logger)
		}
		return nil
	}
	app.After = func(c *cli.Context) error {
		_ = fudge.Logger().Sync()
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:      "dump",
			Usage:     "Print the fields of an encoded envelope",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				path, err := requireArg(c)
				if err != nil {
					return err
				}
				return runDump(cfg, path)
			},
		},
		{
			Name:      "browse",
			Usage:     "Explore an encoded envelope interactively",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				path, err := requireArg(c)
				if err != nil {
					return err
				}
				return runBrowse(cfg, path)
			},
		},
		{
			Name:      "build",
			Usage:     "Encode a TOML message description",
			ArgsUsage: "<description.toml>",
			Flags:     []cli.Flag{outputFlag},
			Action: func(c *cli.Context) error {
				path, err := requireArg(c)
				if err != nil {
					return err
				}
				out := c.String("output")
				if out == "" {
					return fmt.Errorf("build needs --output")
				}
				return runBuild(cfg, path, out)
			},
		},
		{
			Name:  "types",
			Usage: "List the Fudge field types",
			Action: func(c *cli.Context) error {
				listTypes(os.Stdout, painter{styled: useColor(cfg.Color, os.Stdout)})
				return nil
			},
		},
	}
	return app
}

func requireArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%s takes exactly one file argument", c.Command.Name)
	}
	return c.Args().First(), nil
}
