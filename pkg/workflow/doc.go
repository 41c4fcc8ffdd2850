// Package workflow implements the content pipeline state machine:
// keyword research, title generation, content generation and publishing, in
// that fixed order.
//
// State is changed only by reducing Actions. Reduce is a pure function over
// a closed set of action types; Machine wraps it with a mutex, writes the
// whole state to an api.Store after every action and, on construction,
// restores a previously stored state when its most recent history entry is
// less than 24 hours old. A stale stored state is ignored but left in the
// store.
//
// CanGoToStep and StepProgress are the navigation guard and progress metric
// consulted by the UI. The reducer itself does not enforce the guard.
package workflow
