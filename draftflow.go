package draftflow

import (
	"github.com/petrijr/draftflow/internal/clock"
	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/pkg/api"
	"github.com/petrijr/draftflow/pkg/autosave"
	"github.com/petrijr/draftflow/pkg/workflow"
)

// Re-export key types so users don't need to dig into pkg/api and friends.

type (
	Store                = api.Store
	Clock                = api.Clock
	Timer                = api.Timer
	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver
	RestoreOutcome       = api.RestoreOutcome

	Step          = workflow.Step
	State         = workflow.State
	Settings      = workflow.Settings
	SettingsPatch = workflow.SettingsPatch
	Draft         = workflow.Draft
	Action        = workflow.Action
	Machine       = workflow.Machine

	AutosaveStatus = autosave.Status
	DraftRecord    = autosave.Record[workflow.Draft]
)

// Re-export common helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
	ErrKeyNotFound       = api.ErrKeyNotFound
)

// Re-export the pipeline steps.

const (
	StepKeyword = workflow.StepKeyword
	StepTitle   = workflow.StepTitle
	StepContent = workflow.StepContent
	StepPublish = workflow.StepPublish
)

// SystemClock returns the Clock backed by the time package.
func SystemClock() Clock {
	return clock.System()
}

// NewMemoryStore returns a non-durable in-memory Store.
func NewMemoryStore() Store {
	return persistence.NewInMemoryStore()
}
