package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spetersoncode/flux"
	"github.com/spetersoncode/flux/agui"
	"github.com/spetersoncode/flux/middleware"
	"github.com/spetersoncode/flux/persist"
)

// App is one command invocation: a persisted todo store plus the optional
// AG-UI event stream.
type App struct {
	Store    flux.Store[flux.State]
	Actions  map[string]flux.BoundCreator
	Registry *prometheus.Registry

	sync   *agui.Sync
	events chan events.Event
	out    io.Writer
}

// newLogger builds a text logger at the configured level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// NewApp builds the store and, when configured, starts AG-UI syncing.
func NewApp(ctx context.Context, cfg *Config, adapter persist.Adapter, logger *slog.Logger, out io.Writer) (*App, error) {
	reg := prometheus.NewRegistry()

	store, err := flux.New(rootReducer, flux.WithEnhancer(flux.ComposeEnhancers(
		persist.Enhancer(ctx, adapter, persist.WithLogger(logger)),
		flux.ApplyMiddleware(
			middleware.Recover[flux.State](logger),
			middleware.Logging[flux.State](logger),
			middleware.Metrics[flux.State](middleware.NewRecorder(reg)),
			middleware.Tracing[flux.State](),
			middleware.Thunk[flux.State](nil),
		),
	)))
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	app := &App{
		Store:    store,
		Actions:  flux.BindMap(creators, store.Dispatch),
		Registry: reg,
		out:      out,
	}

	if cfg.EmitEvents {
		app.events = make(chan events.Event, 64)
		app.sync = agui.NewSync(store, app.events, agui.WithLogger(logger))
		if err := app.sync.Start(); err != nil {
			return nil, fmt.Errorf("start event sync: %w", err)
		}
	}

	return app, nil
}

// Close stops event syncing and writes any pending events as JSON lines.
func (a *App) Close() error {
	if a.sync == nil {
		return nil
	}
	a.sync.Stop()
	close(a.events)
	for ev := range a.events {
		data, err := ev.ToJSON()
		if err != nil {
			return fmt.Errorf("encode %s event: %w", ev.Type(), err)
		}
		fmt.Fprintln(a.out, string(data))
	}
	return nil
}

// PrintTodos writes the visible todos.
func (a *App) PrintTodos() error {
	state, err := a.Store.GetState()
	if err != nil {
		return err
	}
	filter, _ := state.Get("filter").(string)
	todos := visible(state)
	fmt.Fprintf(a.out, "filter: %s (%d shown)\n", filter, len(todos))
	for _, t := range todos {
		mark := " "
		if t.Done {
			mark = "x"
		}
		fmt.Fprintf(a.out, "%3d [%s] %s\n", t.Index, mark, t.Text)
	}
	return nil
}

// PrintMetrics writes a summary of the dispatch counters.
func (a *App) PrintMetrics() error {
	families, err := a.Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(a.out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(a.out, "%s{%s} count=%d\n", mf.GetName(), strings.Join(labels, ","), m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}
