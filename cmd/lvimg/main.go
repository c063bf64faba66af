package main

import (
	"io"
	"log"
	"os"

	"github.com/lvtools/lvimg"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConverter(c *cli.Context) (*lvimg.Converter, *lvimg.IconDB, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	var db *lvimg.IconDB
	if file := c.String("db"); file != "" {
		var err error
		if db, err = lvimg.OpenIconDB(file); err != nil {
			return nil, nil, err
		}
	}

	return lvimg.New(db, logger), db, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "lvimg"
	app.Usage = "LVGL C array image conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"LVIMG_DB"},
			Usage:   "path to icon catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert C array sources to binary containers",
			Description: "SOURCE may be a single C file or a directory tree",
			ArgsUsage:   "SOURCE TARGET",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "png",
					Usage: "also write PNG files",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 4,
					Usage: "upscale factor of the second PNG",
				},
				&cli.StringFlag{
					Name:  "icon",
					Usage: "extract a single icon by name",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, db, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if db != nil {
					defer db.Close()
				}

				opts := lvimg.ConvertOptions{
					PNG:   c.Bool("png"),
					Scale: c.Int("scale"),
					Icon:  c.String("icon"),
				}

				source, target := c.Args().Get(0), c.Args().Get(1)
				info, err := os.Stat(source)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if info.IsDir() {
					err = conv.ConvertTree(source, target, opts)
				} else {
					err = conv.ConvertFile(source, target, opts)
				}
				if err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "analyze",
			Usage:     "Analyze an existing binary container",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, db, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if db != nil {
					defer db.Close()
				}

				data, err := os.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := conv.Analyze(os.Stdout, data); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "catalog",
			Usage:     "Look up a converted icon in the catalog database",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, db, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if db == nil {
					return cli.Exit("catalog requires --db", 1)
				}
				defer db.Close()

				name := c.Args().First()
				bin, err := db.FindByName(name)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if bin == nil {
					return cli.Exit("no such icon: "+name, 1)
				}

				if err := conv.Analyze(os.Stdout, bin); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
