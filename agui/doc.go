// Package agui mirrors a flux store as AG-UI state events.
//
// AG-UI (Agent-User Interface) is an event-based protocol for connecting
// agents to user-facing applications. Its STATE_SNAPSHOT and STATE_DELTA
// events carry shared state to the frontend; this package produces them from
// a [flux.Store] over [flux.State].
//
// # Usage
//
//	ch := make(chan events.Event, 64)
//	sync := agui.NewSync(store, ch)
//	if err := sync.Start(); err != nil {
//	    return err
//	}
//	defer sync.Stop()
//
//	go func() {
//	    for ev := range ch {
//	        writeEvent(ev) // SSE writer, websocket, ...
//	    }
//	}()
//
// Start emits RUN_STARTED followed by a STATE_SNAPSHOT of the current state.
// After every dispatch the top-level keys of the new state are compared with
// the previous one and a STATE_DELTA carrying JSON Patch add, replace and
// remove operations is emitted. Dispatches that change nothing emit nothing.
// Stop emits RUN_FINISHED.
//
// The package does NOT provide HTTP handlers or transport implementations.
//
// # Delivery
//
// Events are sent without blocking. When the channel is full the event is
// dropped, logged, and counted in [Sync.Dropped]; a consumer that falls
// behind should resynchronize from a fresh snapshot.
//
// # Thread Safety
//
// A Sync runs inside the store's listener callbacks and inherits the store's
// concurrency model: it is NOT safe for concurrent use. [Diff] is stateless
// and safe for concurrent use.
package agui
