// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// songsCommand handles catalog operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"song"},
		Usage:   "Browse the song catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all songs in the catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "show",
				Usage: "Show a song with its full lyrics",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "song",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongsShow,
			},
		},
	}
}

// gatewayCommand handles one-shot AI gateway operations
func gatewayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "gateway",
		Aliases: []string{"ai"},
		Usage:   "One-shot AI gateway operations",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Analyze a song's lyrics (vocabulary, grammar, cultural notes)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "song",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "Bypass the local cache and re-analyze",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.GatewayAnalyze,
			},
			{
				Name:  "translate",
				Usage: "Translate one line of Japanese text",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "text",
					},
				},
				Action: r.GatewayTranslate,
			},
			{
				Name:  "quiz",
				Usage: "Generate a quiz for a song and print it with answers",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "song",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GatewayQuiz,
			},
			{
				Name:  "tutor",
				Usage: "Ask the tutor a single question",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "question",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "song",
						Usage: "Ground the tutor in a catalog song",
					},
				},
				Action: r.GatewayTutor,
			},
		},
	}
}

// exportCommand handles study-pack exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export study sheets",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Build and export a study pack for one song",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "song",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (markdown, csv, or text)",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (directory for markdown, base path otherwise)",
					},
				},
				Action: r.ExportRun,
			},
			{
				Name:  "all",
				Usage: "Export study packs for the whole catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (markdown, csv, or text)",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "study-packs",
					},
				},
				Action: r.ExportAll,
			},
		},
	}
}

// historyCommand handles recorded quiz attempts
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Quiz attempt history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded quiz attempts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "song",
						Usage: "Limit to one song",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "clear",
				Usage: "Delete recorded quiz attempts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "song",
						Usage: "Limit to one song",
					},
				},
				Action: r.HistoryClear,
			},
		},
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config.toml from the bundled template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the new config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive study sessions.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive study TUI",
		Action:  r.TUI,
	}
}
