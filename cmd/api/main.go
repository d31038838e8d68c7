package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/karthikdm21/Saathi-Voice/internal/config"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/logger"
	"github.com/karthikdm21/Saathi-Voice/internal/server"
)

func main() {
	app := &cli.App{
		Name:  "saathi-api",
		Usage: "Saathi Voice mentorship REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				EnvVars: []string{"SAATHI_CONFIG"},
				Usage:   "path to the YAML configuration file",
			},
		},
		Action: func(c *cli.Context) error {
			srv, err := server.NewServer(c.String("config"))
			if err != nil {
				logger.Error().Err(err).Msg("Failed to initialize server")
				return err
			}

			// Run blocks until a shutdown signal arrives
			if err := srv.Run(); err != nil {
				logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
				return err
			}

			logger.Info().Msg("Application finished gracefully.")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
