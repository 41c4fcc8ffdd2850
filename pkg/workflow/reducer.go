package workflow

import (
	"fmt"
	"time"
)

// Reduce returns the state that results from applying a to s at time at.
// History-producing actions append their entry first and then update the
// selected field.
func Reduce(s State, a Action, at time.Time) State {
	switch a := a.(type) {
	case SetStep:
		if a.Step.Valid() {
			s.CurrentStep = a.Step
		}
	case SetKeyword:
		s.History.Push(entry(StepKeyword, at, a.Keyword))
		s.SelectedKeyword = a.Keyword
	case SetKeywordResults:
		s.KeywordResults = a.Results
	case SetTitle:
		s.History.Push(entry(StepTitle, at, a.Title))
		s.SelectedTitle = a.Title
	case SetTitles:
		s.GeneratedTitles = a.Titles
	case SetContent:
		s.History.Push(entry(StepContent, at, a.Content))
		s.GeneratedContent = a.Content
	case UpdateSettings:
		s.Settings = a.Patch.apply(s.Settings)
	case NextStep:
		s.CurrentStep = s.CurrentStep.Next()
	case PrevStep:
		s.CurrentStep = s.CurrentStep.Prev()
	case Reset:
		return InitialState()
	case Restore:
		if !a.State.CurrentStep.Valid() {
			return s
		}
		return a.State
	default:
		panic(fmt.Sprintf("workflow: unhandled action %T", a))
	}
	return s
}

func entry(step Step, at time.Time, data any) HistoryEntry {
	return HistoryEntry{Step: step, Timestamp: at.UnixMilli(), Data: data}
}
