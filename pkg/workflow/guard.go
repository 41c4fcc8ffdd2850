package workflow

import "math"

// CanGoToStep reports whether step is reachable from s, regardless of the
// current step. Each step requires every earlier step's selection.
func CanGoToStep(s State, step Step) bool {
	switch step {
	case StepKeyword:
		return true
	case StepTitle:
		return s.SelectedKeyword != ""
	case StepContent:
		return s.SelectedKeyword != "" && s.SelectedTitle != ""
	case StepPublish:
		return s.SelectedKeyword != "" && s.SelectedTitle != "" && s.GeneratedContent != ""
	default:
		return false
	}
}

// StepProgress returns the percentage of keyword, title and content that are
// set, rounded: 0, 33, 67 or 100.
func StepProgress(s State) int {
	done := 0
	for _, v := range []string{s.SelectedKeyword, s.SelectedTitle, s.GeneratedContent} {
		if v != "" {
			done++
		}
	}
	return int(math.Round(float64(done) / 3 * 100))
}
