package agui

import (
	"errors"
	"log/slog"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/spetersoncode/flux"
)

// ErrAlreadyStarted is returned when Start is called on a running Sync.
var ErrAlreadyStarted = errors.New("agui: sync already started")

// Sync publishes the state of a store as AG-UI events.
//
// Create one Sync per run using NewSync.
type Sync struct {
	store    flux.Store[flux.State]
	out      chan<- events.Event
	logger   *slog.Logger
	threadID string
	runID    string

	prev        flux.State
	unsubscribe flux.Unsubscribe
	dropped     int
}

// Option configures a Sync.
type Option func(*Sync)

// WithLogger sets the logger used for dropped events and diff failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sync) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithThreadID sets the thread ID reported in lifecycle events.
func WithThreadID(id string) Option {
	return func(s *Sync) {
		s.threadID = id
	}
}

// WithRunID sets the run ID reported in lifecycle events.
func WithRunID(id string) Option {
	return func(s *Sync) {
		s.runID = id
	}
}

// NewSync creates a Sync that sends events for store on out. Thread and run
// IDs are generated unless set by options.
func NewSync(store flux.Store[flux.State], out chan<- events.Event, opts ...Option) *Sync {
	s := &Sync{
		store:  store,
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.threadID == "" {
		s.threadID = events.GenerateThreadID()
	}
	if s.runID == "" {
		s.runID = events.GenerateRunID()
	}
	return s
}

// ThreadID returns the thread ID for this sync.
func (s *Sync) ThreadID() string {
	return s.threadID
}

// RunID returns the run ID for this sync.
func (s *Sync) RunID() string {
	return s.runID
}

// Dropped returns the number of events discarded because out was full.
func (s *Sync) Dropped() int {
	return s.dropped
}

// Start emits RUN_STARTED and a snapshot of the current state, then
// subscribes to the store.
func (s *Sync) Start() error {
	if s.unsubscribe != nil {
		return ErrAlreadyStarted
	}
	state, err := s.store.GetState()
	if err != nil {
		return err
	}
	unsubscribe, err := s.store.Subscribe(s.onChange)
	if err != nil {
		return err
	}
	s.unsubscribe = unsubscribe
	s.prev = state

	s.emit(events.NewRunStartedEvent(s.threadID, s.runID))
	s.emit(events.NewStateSnapshotEvent(state.Map()))
	return nil
}

// Stop unsubscribes from the store and emits RUN_FINISHED. Stopping a Sync
// that is not running does nothing.
func (s *Sync) Stop() {
	if s.unsubscribe == nil {
		return
	}
	s.unsubscribe()
	s.unsubscribe = nil
	s.emit(events.NewRunFinishedEvent(s.threadID, s.runID))
}

// Resync emits a fresh STATE_SNAPSHOT, e.g. after the consumer dropped events.
func (s *Sync) Resync() error {
	state, err := s.store.GetState()
	if err != nil {
		return err
	}
	s.prev = state
	s.emit(events.NewStateSnapshotEvent(state.Map()))
	return nil
}

func (s *Sync) onChange() {
	next, err := s.store.GetState()
	if err != nil {
		s.logger.Error("agui: read state", slog.String("error", err.Error()))
		return
	}
	ops, err := Diff(s.prev, next)
	if err != nil {
		s.logger.Error("agui: diff state",
			slog.String("run_id", s.runID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.prev = next
	if len(ops) == 0 {
		return
	}
	s.emit(events.NewStateDeltaEvent(ops))
}

func (s *Sync) emit(ev events.Event) {
	select {
	case s.out <- ev:
	default:
		s.dropped++
		s.logger.Warn("agui: event dropped",
			slog.String("type", string(ev.Type())),
			slog.String("run_id", s.runID),
		)
	}
}
