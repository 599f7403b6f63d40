package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  appID,
		Usage: "farm produce marketplace API",
		Before: func(_ *cli.Context) error {
			c, err := parseEnv()
			if err != nil {
				return err
			}
			return setupLogging(c.LogLevel)
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the gRPC health endpoint",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations",
				Action: migrateDatabase,
			},
			{
				Name:  "seed",
				Usage: "load the product and vehicle catalog into an empty database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Usage:   "path to a YAML catalog, the built-in catalog is used when empty",
						EnvVars: []string{"GREENLINK_SEED_FILE"},
					},
				},
				Action: seedDatabase,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("greenlink failed")
	}
}
