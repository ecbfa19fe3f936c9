// Package engine ties the surface together: a clock, a spring mesh, the
// fill and orientation trackers, and an inbox for input that arrives from
// other goroutines.
//
// # Example
//
//	e, err := engine.New(config.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	e.SetFill(50)
//	for range ticker.C {
//	    e.Tick(time.Since(last))
//	    draw(e.Frame())
//	}
//
// # Thread Safety
//
// An Engine has a single owner that calls Step or Tick. Sensor readers and
// other producers must only call [Engine.Post], which enqueues without
// blocking; queued messages are applied at the start of the next step in the
// order they were posted.
package engine
