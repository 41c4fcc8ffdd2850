package autosave

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	LabelUnsaved    = "unsaved changes"
	LabelJustNow    = "just now"
	LabelNeverSaved = "never saved"

	// TimeOfDayLayout formats saves that happened an hour or more ago.
	TimeOfDayLayout = "3:04:05 PM"
)

// Label renders st as the short text shown next to an editor.
//
// Dirty wins over everything else. Otherwise the last save is shown relative
// to now for the first hour and as a local time of day after that.
func Label(st Status, now time.Time) string {
	if st.HasUnsavedChanges {
		return LabelUnsaved
	}
	if st.LastSaved == nil {
		return LabelNeverSaved
	}

	minutes := int(now.Sub(*st.LastSaved) / time.Minute)
	switch {
	case minutes < 1:
		return LabelJustNow
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	default:
		return st.LastSaved.Local().Format(TimeOfDayLayout)
	}
}

var (
	unsavedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	savedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	neverStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// Indicator is the save-status display: a status plus an optional manual
// save trigger.
type Indicator struct {
	Status
	OnSaveNow func()
}

// CanSaveNow reports whether the manual save affordance should be offered.
func (i Indicator) CanSaveNow() bool {
	return i.HasUnsavedChanges && i.OnSaveNow != nil
}

// SaveNow runs the manual save callback when CanSaveNow allows it. It
// reports whether the callback ran.
func (i Indicator) SaveNow() bool {
	if !i.CanSaveNow() {
		return false
	}
	i.OnSaveNow()
	return true
}

// Render returns the styled one-line status.
func (i Indicator) Render(now time.Time) string {
	label := Label(i.Status, now)
	switch {
	case i.HasUnsavedChanges:
		out := unsavedStyle.Render("● " + label)
		if i.CanSaveNow() {
			out += " " + hintStyle.Render("save now")
		}
		return out
	case i.LastSaved == nil:
		return neverStyle.Render(label)
	default:
		return savedStyle.Render("✓ saved " + label)
	}
}
