package workflow

// Action is a state change request. The set of actions is closed: only the
// types in this file implement it, and Reduce handles every one of them.
type Action interface {
	// Name identifies the action in logs and observers.
	Name() string
	sealed()
}

// SetStep moves to Step without consulting CanGoToStep. Unknown steps are
// ignored.
type SetStep struct{ Step Step }

// SetKeyword records the chosen keyword.
type SetKeyword struct{ Keyword string }

// SetKeywordResults replaces the keyword research results.
type SetKeywordResults struct{ Results []KeywordResult }

// SetTitle records the chosen title.
type SetTitle struct{ Title string }

// SetTitles replaces the generated title candidates.
type SetTitles struct{ Titles []string }

// SetContent records the generated content.
type SetContent struct{ Content string }

// UpdateSettings merges the non-nil fields of Patch into the settings.
type UpdateSettings struct{ Patch SettingsPatch }

// NextStep advances one step, stopping at StepPublish.
type NextStep struct{}

// PrevStep goes back one step, stopping at StepKeyword.
type PrevStep struct{}

// Reset returns to InitialState.
type Reset struct{}

// Restore replaces the whole state. It is used when loading a stored state.
type Restore struct{ State State }

// SettingsPatch is a partial Settings; nil fields are left unchanged.
type SettingsPatch struct {
	Tone     *string `json:"tone,omitempty"`
	Length   *string `json:"length,omitempty"`
	Language *string `json:"language,omitempty"`
}

// Setting returns a pointer to v, for SettingsPatch fields.
func Setting(v string) *string { return &v }

func (p SettingsPatch) apply(s Settings) Settings {
	if p.Tone != nil {
		s.Tone = *p.Tone
	}
	if p.Length != nil {
		s.Length = *p.Length
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	return s
}

func (SetStep) Name() string           { return "set_step" }
func (SetKeyword) Name() string        { return "set_keyword" }
func (SetKeywordResults) Name() string { return "set_keyword_results" }
func (SetTitle) Name() string          { return "set_title" }
func (SetTitles) Name() string         { return "set_titles" }
func (SetContent) Name() string        { return "set_content" }
func (UpdateSettings) Name() string    { return "update_settings" }
func (NextStep) Name() string          { return "next_step" }
func (PrevStep) Name() string          { return "prev_step" }
func (Reset) Name() string             { return "reset" }
func (Restore) Name() string           { return "restore" }

func (SetStep) sealed()           {}
func (SetKeyword) sealed()        {}
func (SetKeywordResults) sealed() {}
func (SetTitle) sealed()          {}
func (SetTitles) sealed()         {}
func (SetContent) sealed()        {}
func (UpdateSettings) sealed()    {}
func (NextStep) sealed()          {}
func (PrevStep) sealed()          {}
func (Reset) sealed()             {}
func (Restore) sealed()           {}
