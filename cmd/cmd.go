// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "pretty",
		Usage: "Pretty-print JSON output",
		Value: true,
	}
}

// setupCommand handles local store and configuration setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create config.toml and initialize the local store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "remote-url",
						Usage: "Postgres connection string of the remote store",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path of the local store",
					},
				},
				Action: r.SetupInit,
			},
			{
				Name:   "migrate",
				Usage:  "Apply local and remote migrations and show their status",
				Action: r.SetupMigrate,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent local migration",
				Action: r.SetupRollback,
			},
			{
				Name:  "reset",
				Usage: "Clear all locally stored data",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.SetupReset,
			},
		},
	}
}

func habitFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Usage:    "Habit name",
			Required: required,
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Short description",
		},
		&cli.StringFlag{
			Name:  "category",
			Usage: "physical, mental, social, spiritual or creative",
		},
		&cli.StringFlag{
			Name:  "frequency",
			Usage: "daily, weekly or monthly",
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "Hex color, e.g. #3B82F6",
		},
		&cli.StringFlag{
			Name:  "icon",
			Usage: "Icon name",
		},
	}
}

// habitCommand handles habit tracking.
func habitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "habit",
		Aliases: []string{"habits", "h"},
		Usage:   "Create and track habits",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Create a habit",
				Flags:  habitFlags(true),
				Action: r.HabitAdd,
			},
			{
				Name:   "list",
				Usage:  "List habits with today's completion",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.HabitList,
			},
			{
				Name:      "toggle",
				Usage:     "Toggle a habit's completion for today or a given date",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Day to toggle (YYYY-MM-DD), defaults to today",
					},
				},
				Action: r.HabitToggle,
			},
			{
				Name:      "edit",
				Usage:     "Edit a habit",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     habitFlags(false),
				Action:    r.HabitEdit,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a habit",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.HabitDelete,
			},
		},
	}
}

func noteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "Note title",
		},
		&cli.StringFlag{
			Name:  "content",
			Usage: "Note body",
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "Tag (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "sticker",
			Usage: "Sticker id (repeatable), see `mindflow stickers`",
		},
		&cli.IntFlag{
			Name:  "mood",
			Usage: "Mood from 1 (sad) to 5 (great)",
		},
	}
}

// noteCommand handles journal notes.
func noteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "note",
		Aliases: []string{"notes"},
		Usage:   "Write and browse notes",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Write a note",
				Flags:  noteFlags(),
				Action: r.NoteAdd,
			},
			{
				Name:  "list",
				Usage: "List notes, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Only notes with this tag",
					},
					jsonFlag(), prettyFlag(),
				},
				Action: r.NoteList,
			},
			{
				Name:      "edit",
				Usage:     "Edit a note",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: append(noteFlags(), &cli.BoolFlag{
					Name:  "clear-mood",
					Usage: "Remove the recorded mood",
				}),
				Action: r.NoteEdit,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a note",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.NoteDelete,
			},
		},
	}
}

// achievementsCommand shows badge progress.
func achievementsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "achievements",
		Aliases: []string{"badges"},
		Usage:   "Achievement progress",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every achievement with progress",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "unlocked",
						Usage: "Only unlocked achievements",
					},
					jsonFlag(), prettyFlag(),
				},
				Action: r.AchievementsList,
			},
			{
				Name:   "check",
				Usage:  "Evaluate achievements and record new unlocks",
				Action: r.AchievementsCheck,
			},
		},
	}
}

func insightsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "insights",
		Usage:  "Weekly completion, streak and mood statistics",
		Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
		Action: r.Insights,
	}
}

// authCommand handles account sessions.
func authCommand(r *Runner) *cli.Command {
	credentials := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
			},
		}
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account session",
		Commands: []*cli.Command{
			{
				Name:   "signin",
				Usage:  "Sign in to the remote store",
				Flags:  credentials(),
				Action: r.AuthSignIn,
			},
			{
				Name:  "signup",
				Usage: "Create an account",
				Flags: append(credentials(), &cli.StringFlag{
					Name:  "name",
					Usage: "Full name",
				}),
				Action: r.AuthSignUp,
			},
			{
				Name:   "signout",
				Usage:  "Sign out and forget the stored session",
				Action: r.AuthSignOut,
			},
			{
				Name:   "status",
				Usage:  "Show the current session",
				Action: r.AuthStatus,
			},
			{
				Name:  "rename",
				Usage: "Change your display name",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "New full name",
						Required: true,
					},
				},
				Action: r.AuthRename,
			},
		},
	}
}

// spotifyCommand handles music linking.
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"music"},
		Usage:   "Link Spotify and browse playlists",
		Commands: []*cli.Command{
			{
				Name:  "connect",
				Usage: "Link your Spotify account through the browser",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for authorization",
						Value: defaultConnectTimeout,
					},
				},
				Action: r.SpotifyConnect,
			},
			{
				Name:   "disconnect",
				Usage:  "Remove the stored Spotify tokens",
				Action: r.SpotifyDisconnect,
			},
			{
				Name:  "playlists",
				Usage: "List playlists of the linked account",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					jsonFlag(), prettyFlag(),
				},
				Action: r.SpotifyPlaylists,
			},
			{
				Name:  "curated",
				Usage: "List the built-in wellness playlists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only playlists in this category",
					},
					jsonFlag(), prettyFlag(),
				},
				Action: r.SpotifyCurated,
			},
		},
	}
}

func stickersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stickers",
		Usage: "List the sticker catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Only stickers in this category",
			},
			jsonFlag(), prettyFlag(),
		},
		Action: r.Stickers,
	}
}

// settingsCommand handles application preferences.
func settingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show and change preferences",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show all settings",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.SettingsShow,
			},
			{
				Name:  "set",
				Usage: "Change one setting, e.g. `settings set appearance.fontSize large`",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
					&cli.StringArg{Name: "value"},
				},
				Action: r.SettingsSet,
			},
			{
				Name:   "reset",
				Usage:  "Restore default settings",
				Action: r.SettingsReset,
			},
			{
				Name:  "image",
				Usage: "Show, set or clear the profile image",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "set",
						Usage: "Image path or URL",
					},
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Remove the profile image",
					},
				},
				Action: r.SettingsImage,
			},
		},
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export habits, notes, achievements and settings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "json, csv or markdown (defaults to the export format setting)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file, or directory for csv",
			},
		},
		Action: r.Export,
	}
}

func pushCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Upload local habits and notes to the remote store",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent uploads",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Uploads per second",
				Value: 10,
			},
		},
		Action: r.Push,
	}
}

// dashboardCommand returns the top-level TUI command.
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch the interactive dashboard",
		Action:  r.Dashboard,
	}
}
