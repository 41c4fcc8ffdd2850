// Package draftflow provides the client-side state of a content generation
// pipeline: a workflow state machine that walks a draft through keyword
// research, title generation, content generation and publishing, and an
// autosave engine that keeps the editable draft safe across crashes.
//
// # Core Concepts
//
//  1. Machine
//  2. Autosave Engine
//  3. Store
//  4. Session
//
// # Machine
//
// A workflow.Machine owns the pipeline State. Every change goes through an
// Action that is reduced by a pure function; the resulting state is written
// to the Store as JSON after each action. On construction the machine
// restores a previously stored state if its most recent history entry is
// less than 24 hours old.
//
// Navigation is advisory: CanGoToStep reports whether the prerequisites of a
// step are met, and Navigate only moves when they are. StepProgress returns
// 0, 33, 67 or 100 depending on how many of keyword, title and content are
// filled in.
//
// # Autosave Engine
//
// An autosave.Engine tracks a value, marks itself dirty when the value's JSON
// form differs from the last saved one, and saves after a quiet period
// (30 seconds by default). Saved records older than 24 hours are discarded
// on restore. The engine never applies restored data by itself; callers
// decide.
//
// # Store
//
// Both components persist through the api.Store interface. Backends:
//
//   - In-memory (non-durable, best for tests)
//   - SQLite
//   - Postgres
//   - Redis
//   - MongoDB
//
// # Session
//
// Session wires a Machine and an autosave Engine over one Store so that
// every workflow change is tracked as a Draft:
//
//	sess, err := draftflow.NewInMemorySession(ctx, draftflow.SessionConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	sess.Machine.SetKeyword(ctx, "seo")
//	sess.Machine.SetTitle(ctx, "Top 10 Tips")
//	fmt.Println(sess.Machine.StepProgress()) // 67
//
// For a command-line front end, see cmd/draftflow.
package draftflow
