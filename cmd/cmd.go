// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// formatFlag selects text, json or yaml output.
func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, json or yaml",
		Value:   "text",
	}
}

// globalFlags are accepted by every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Append logs to this file instead of stderr",
		},
	}
}

// pickCommand finds song list entries in a library and copies them out
func pickCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pick",
		Usage: "Copy the songs of a song list from a music library",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "list"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "Music library root (defaults to library.root)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Folder to copy matches into (defaults to library.output)",
			},
			&cli.BoolFlag{
				Name:    "metadata",
				Aliases: []string{"m"},
				Usage:   "Match embedded tags before file names",
			},
			&cli.FloatFlag{
				Name:  "threshold",
				Usage: "Minimum metadata match score (0-1]",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Follow progress in the interactive terminal view",
			},
		},
		Action: r.Pick,
	}
}

// generateCommand writes a song list from a folder of audio files
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a song list from a folder of audio files",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "folder"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Song list file to write",
				Value:   "playlist.txt",
			},
			&cli.BoolFlag{
				Name:    "metadata",
				Aliases: []string{"m"},
				Usage:   "Read title and artist from tags before file names",
			},
			&cli.BoolFlag{
				Name:  "subdirs",
				Usage: "Include subfolders (defaults to generator.include_subdirs)",
			},
		},
		Action: r.Generate,
	}
}

// compareCommand diffs two song lists
func compareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Compare two song lists",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "list-a"},
			&cli.StringArg{Name: "list-b"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "report-dir",
				Aliases: []string{"r"},
				Usage:   "Write comparison reports into this folder",
			},
			&cli.FloatFlag{
				Name:  "similar",
				Usage: "Pair exclusive entries at least this similar (0-1, 0 disables)",
			},
			formatFlag(),
		},
		Action: r.Compare,
	}
}

// analyzeCommand reports how a folder lends itself to song list generation
func analyzeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Count audio files, parseable names and tagged files in a folder",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "folder"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "subdirs",
				Usage: "Include subfolders (defaults to generator.include_subdirs)",
			},
			formatFlag(),
		},
		Action: r.Analyze,
	}
}

// inspectCommand prints the tags of audio files
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show the metadata of audio files",
		Arguments: []cli.Argument{
			&cli.StringArgs{Name: "files", Min: 1, Max: -1},
		},
		Flags: []cli.Flag{
			formatFlag(),
		},
		Action: r.Inspect,
	}
}

// duplicatesCommand groups audio files with matching tags
func duplicatesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "duplicates",
		Aliases: []string{"dupes"},
		Usage:   "Find audio files whose tags match",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "folder"},
		},
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "threshold",
				Usage: "Percentage of matching fields for a duplicate",
				Value: 90,
			},
			&cli.StringSliceFlag{
				Name:  "field",
				Usage: "Tag field to compare (title, artist, album, albumartist, date, genre, track), repeatable",
			},
			&cli.BoolFlag{
				Name:  "subdirs",
				Usage: "Include subfolders",
				Value: true,
			},
			formatFlag(),
		},
		Action: r.Duplicates,
	}
}

// setupCommand handles setup operations
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file with default settings to --config",
				Action: r.SetupConfig,
			},
		},
	}
}
