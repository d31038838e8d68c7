package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/karthikdm21/Saathi-Voice/internal/pkg/logger"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/session"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/voice/apiclient"
)

// runtime is shared by every command and built once flags are parsed
type runtime struct {
	client   *apiclient.Client
	sessions session.Store
}

func newApp() *cli.App {
	rt := &runtime{}

	return &cli.App{
		Name:  "saathi",
		Usage: "voice-first mentorship from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   "http://localhost:5000",
				EnvVars: []string{"SAATHI_SERVER"},
				Usage:   "base URL of the Saathi Voice API",
			},
			&cli.StringFlag{
				Name:    "session",
				EnvVars: []string{"SAATHI_SESSION"},
				Usage:   "path of the session file (defaults to the user config directory)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "HTTP timeout per request",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log requests and recorder activity",
			},
		},
		Before: func(c *cli.Context) error {
			level := zerolog.WarnLevel
			if c.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			logger.Configure(logger.Config{Level: level, Pretty: true, Output: c.App.ErrWriter})

			path := c.String("session")
			if path == "" {
				var err error
				if path, err = session.DefaultPath(); err != nil {
					return err
				}
			}
			rt.sessions = session.NewFileStore(path)
			rt.client = apiclient.New(c.String("server"),
				apiclient.WithTimeout(c.Duration("timeout")),
				apiclient.WithLogger(logger.WithComponent("apiclient")),
			)
			return nil
		},
		Commands: []*cli.Command{
			rt.onboardStudentCommand(),
			rt.onboardMentorCommand(),
			rt.whoamiCommand(),
			rt.logoutCommand(),
			rt.searchCommand(),
			rt.connectCommand(),
			rt.mentorshipsCommand(),
			rt.sendVoiceCommand(),
			rt.threadCommand(),
		},
	}
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
