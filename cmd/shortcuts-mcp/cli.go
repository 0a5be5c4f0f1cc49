package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *ops.Env) *cli.App {
	app := &cli.App{
		Name:    "shortcuts-mcp",
		Usage:   "Run macOS shortcuts with usage telemetry",
		Version: Version,
		Commands: []*cli.Command{
			listCmd(env),
			runCmd(env),
			viewCmd(env),
			annotateCmd(env),
			profileCmd(env),
			statsCmd(env),
			stateCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// listCmd creates the list command.
func listCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List known shortcuts with identifiers and purposes",
		Action: func(c *cli.Context) error {
			output, err := ops.GetCatalog(c.Context, env)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// runCmd creates the run command.
func runCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a shortcut by name (input via --input or piped stdin)",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "Text input passed to the shortcut"},
			&cli.StringFlag{Name: "purpose", Aliases: []string{"p"}, Usage: "Why this shortcut is being run (recorded as an annotation)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("shortcut name is required"))
			}

			input := c.String("input")
			if input == "" && stdinHasData() {
				piped, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input = piped
			}

			output, err := ops.Run(c.Context, env, ops.RunInput{
				Name:    c.Args().First(),
				Input:   input,
				Purpose: c.String("purpose"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// viewCmd creates the view command.
func viewCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Open a shortcut in the Shortcuts editor",
		ArgsUsage: "<name>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("shortcut name is required"))
			}
			output, err := ops.View(c.Context, env, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// annotateCmd creates the annotate command.
func annotateCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "annotate",
		Usage:     "Record why a shortcut is used",
		ArgsUsage: "<name> <purpose>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("shortcut name and purpose are required"))
			}
			output, err := ops.RecordPurpose(c.Context, env, ops.AnnotateInput{
				Shortcut: c.Args().Get(0),
				Purpose:  c.Args().Get(1),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// profileCmd creates the profile command with get/update subcommands.
func profileCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Read or update the user profile",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print the stored profile",
				Action: func(_ *cli.Context) error {
					output, err := ops.GetProfile(env)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "update",
				Usage: "Deep-merge a partial profile document (JSON via stdin)",
				Action: func(_ *cli.Context) error {
					if !stdinHasData() {
						return outputError(errors.NewInvalidRequest("update document must be piped via stdin"))
					}
					raw, err := readStdin()
					if err != nil {
						return outputError(errors.NewInternal(err))
					}

					partial := make(map[string]any)
					if err := json.Unmarshal([]byte(raw), &partial); err != nil {
						return outputError(errors.NewInvalidRequest(fmt.Sprintf("update document is not a JSON object: %v", err)))
					}

					output, err := ops.SaveProfile(env, partial)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show usage statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "local", Usage: "Recompute from the telemetry log instead of serving the snapshot"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("local") {
				output, err := ops.ComputeStatistics(env)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			// No sampling capability in CLI mode; serves the snapshot.
			output, err := ops.Statistics(c.Context, env, nil)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// stateCmd creates the state command.
func stateCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Show the current time and timezone",
		Action: func(_ *cli.Context) error {
			return outputJSON(ops.GetSystemState(env))
		},
	}
}

// outputJSON writes indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.ShortcutError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
