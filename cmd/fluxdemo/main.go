// Command fluxdemo is a todo list kept in a persisted flux store.
//
// Every invocation restores the list from FLUX_STATE_FILE, dispatches the
// requested action and saves the result. Set FLUX_EMIT_EVENTS=true to print
// the AG-UI state events the dispatch produced.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/flux/persist"
)

var (
	rootCmd = &cobra.Command{
		Use:           "fluxdemo",
		Short:         "A todo list backed by a flux store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addCmd = &cobra.Command{
		Use:   "add [text...]",
		Short: "Adds one todo per argument",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd,
	}
	toggleCmd = &cobra.Command{
		Use:   "toggle [index]",
		Short: "Marks a todo done or not done",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggle,
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes completed todos",
		Args:  cobra.NoArgs,
		RunE:  withApp(func(app *App, _ []string) error { _, err := app.Actions["clear"](); return err }),
	}
	filterCmd = &cobra.Command{
		Use:       "filter [all|active|done]",
		Short:     "Selects which todos are listed",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{FilterAll, FilterActive, FilterDone},
		RunE:      withApp(func(app *App, args []string) error { _, err := app.Actions["filter"](args[0]); return err }),
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists todos",
		Args:  cobra.NoArgs,
		RunE:  withApp(func(*App, []string) error { return nil }),
	}
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Deletes the saved state",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}

	stateFile   string
	logLevel    string
	emitEvents  bool
	showMetrics bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&stateFile, "state-file", "", "Override FLUX_STATE_FILE")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override FLUX_LOG_LEVEL (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&emitEvents, "events", false, "Print AG-UI state events (same as FLUX_EMIT_EVENTS=true)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print dispatch metrics")

	rootCmd.AddCommand(addCmd, toggleCmd, clearCmd, filterCmd, listCmd, resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig applies command-line overrides on top of the environment.
func loadConfig() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if stateFile != "" {
		cfg.StateFile = stateFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if emitEvents {
		cfg.EmitEvents = true
	}
	return cfg, cfg.Validate()
}

// withApp runs fn against a freshly restored store and prints the result.
func withApp(fn func(app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

		adapter := persist.WithRetry(persist.NewFileAdapter(cfg.StateFile))
		app, err := NewApp(cmd.Context(), cfg, adapter, logger, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		runErr := fn(app, args)
		if err := app.Close(); err != nil && runErr == nil {
			runErr = err
		}
		if runErr != nil {
			return runErr
		}

		if showMetrics {
			if err := app.PrintMetrics(); err != nil {
				return err
			}
		}
		return app.PrintTodos()
	}
}

var runAdd = withApp(func(app *App, args []string) error {
	if len(args) == 1 {
		_, err := app.Actions["add"](args[0])
		return err
	}
	_, err := app.Store.Dispatch(addAll(args...))
	return err
})

var runToggle = withApp(func(app *App, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	_, err = app.Actions["toggle"](index)
	return err
})

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := persist.NewFileAdapter(cfg.StateFile).Clear(context.Background()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cfg.StateFile)
	return nil
}
