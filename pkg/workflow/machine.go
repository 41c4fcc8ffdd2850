package workflow

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/pkg/api"
)

// StorageKey is the store key the Machine mirrors its state into.
const StorageKey = "content_workflow_state"

// ErrInvalidStoredState is reported when a stored state parses but names an
// unknown step.
var ErrInvalidStoredState = errors.New("workflow: stored state has an unknown current step")

// Machine owns a State, reduces actions against it and persists the result.
// It is safe for concurrent use. Dispatches are serialized end to end, so
// subscribers see states in the order the actions were reduced.
type Machine struct {
	store    api.Store
	clock    api.Clock
	observer api.Observer

	// dispatchMu is held for a whole Dispatch; mu guards the fields below.
	dispatchMu sync.Mutex

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// NewMachine returns a Machine with no observer. See NewMachineWithObserver.
func NewMachine(ctx context.Context, store api.Store, clk api.Clock) *Machine {
	return NewMachineWithObserver(ctx, store, clk, nil)
}

// NewMachineWithObserver returns a Machine starting from InitialState, or
// from the state stored under StorageKey when its most recent history entry
// is no older than api.StaleAfter. A missing, malformed or stale stored state
// is ignored and left in the store. Construction itself writes nothing.
func NewMachineWithObserver(ctx context.Context, store api.Store, clk api.Clock, obs api.Observer) *Machine {
	if obs == nil {
		obs = api.NoopObserver{}
	}
	m := &Machine{
		store:     store,
		clock:     clk,
		observer:  obs,
		state:     InitialState(),
		listeners: make(map[int]func(State)),
	}
	if stored, ok := m.load(ctx); ok {
		m.state = Reduce(m.state, Restore{State: stored}, clk.Now())
		obs.OnTransition(ctx, Restore{}.Name(), string(StepKeyword), string(m.state.CurrentStep))
	}
	return m
}

func (m *Machine) load(ctx context.Context) (State, bool) {
	stored, err := persistence.LoadJSON[State](ctx, m.store, StorageKey)
	switch {
	case errors.Is(err, persistence.ErrKeyNotFound):
		m.observer.OnRestore(ctx, StorageKey, api.RestoreMissing, nil)
		return State{}, false
	case errors.Is(err, persistence.ErrCorrupt):
		m.observer.OnRestore(ctx, StorageKey, api.RestoreCorrupt, err)
		return State{}, false
	case err != nil:
		m.observer.OnRestore(ctx, StorageKey, api.RestoreFailed, err)
		return State{}, false
	case !stored.CurrentStep.Valid():
		m.observer.OnRestore(ctx, StorageKey, api.RestoreCorrupt, ErrInvalidStoredState)
		return State{}, false
	}

	last, ok := stored.History.Last()
	if !ok || api.IsStale(last.At(), m.clock.Now()) {
		m.observer.OnRestore(ctx, StorageKey, api.RestoreStale, nil)
		return State{}, false
	}

	m.observer.OnRestore(ctx, StorageKey, api.RestoreHit, nil)
	return stored, true
}

// Dispatch reduces a against the current state, persists the result and
// notifies subscribers. A failed write is reported to the observer only.
// Subscribers run before Dispatch returns and must not call Dispatch.
func (m *Machine) Dispatch(ctx context.Context, a Action) State {
	m.dispatchMu.Lock()
	defer m.dispatchMu.Unlock()

	m.mu.Lock()
	from := m.state.CurrentStep
	m.state = Reduce(m.state, a, m.clock.Now())
	next := m.state
	persistErr := persistence.SaveJSON(ctx, m.store, StorageKey, next)
	listeners := make([]func(State), 0, len(m.listeners))
	for _, id := range slices.Sorted(maps.Keys(m.listeners)) {
		listeners = append(listeners, m.listeners[id])
	}
	m.mu.Unlock()

	if persistErr != nil {
		m.observer.OnSaveFailed(ctx, StorageKey, fmt.Errorf("workflow: %w", persistErr))
	} else {
		m.observer.OnSaved(ctx, StorageKey, m.clock.Now())
	}
	m.observer.OnTransition(ctx, a.Name(), string(from), string(next.CurrentStep))

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// Subscribe registers fn to receive the state after every dispatched action.
// The returned function removes the subscription.
func (m *Machine) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CanGoToStep applies the navigation guard to the current state.
func (m *Machine) CanGoToStep(step Step) bool {
	return CanGoToStep(m.State(), step)
}

// StepProgress returns the progress metric of the current state.
func (m *Machine) StepProgress() int {
	return StepProgress(m.State())
}

// GoToStep moves to step unconditionally.
func (m *Machine) GoToStep(ctx context.Context, step Step) State {
	return m.Dispatch(ctx, SetStep{Step: step})
}

// Navigate moves to step if CanGoToStep allows it, and reports whether it
// did.
func (m *Machine) Navigate(ctx context.Context, step Step) bool {
	if !m.CanGoToStep(step) {
		return false
	}
	m.GoToStep(ctx, step)
	return true
}

// NextStep advances one step, stopping at StepPublish.
func (m *Machine) NextStep(ctx context.Context) State { return m.Dispatch(ctx, NextStep{}) }

// PrevStep goes back one step, stopping at StepKeyword.
func (m *Machine) PrevStep(ctx context.Context) State { return m.Dispatch(ctx, PrevStep{}) }

// SetKeyword selects the keyword.
func (m *Machine) SetKeyword(ctx context.Context, keyword string) State {
	return m.Dispatch(ctx, SetKeyword{Keyword: keyword})
}

// SetKeywordResults replaces the keyword research results.
func (m *Machine) SetKeywordResults(ctx context.Context, results []KeywordResult) State {
	return m.Dispatch(ctx, SetKeywordResults{Results: results})
}

// SetTitle selects the title.
func (m *Machine) SetTitle(ctx context.Context, title string) State {
	return m.Dispatch(ctx, SetTitle{Title: title})
}

// SetTitles replaces the generated title candidates.
func (m *Machine) SetTitles(ctx context.Context, titles []string) State {
	return m.Dispatch(ctx, SetTitles{Titles: titles})
}

// SetContent replaces the generated content.
func (m *Machine) SetContent(ctx context.Context, content string) State {
	return m.Dispatch(ctx, SetContent{Content: content})
}

// UpdateSettings merges the set fields of patch into the settings.
func (m *Machine) UpdateSettings(ctx context.Context, patch SettingsPatch) State {
	return m.Dispatch(ctx, UpdateSettings{Patch: patch})
}

// Reset returns to InitialState. The reset state is persisted too.
func (m *Machine) Reset(ctx context.Context) State { return m.Dispatch(ctx, Reset{}) }
