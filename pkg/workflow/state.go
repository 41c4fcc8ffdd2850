package workflow

// Settings are the generation preferences. All three fields are always set.
type Settings struct {
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	Language string `json:"language"`
}

// DefaultSettings are the settings of the initial state.
var DefaultSettings = Settings{
	Tone:     "professional",
	Length:   "medium",
	Language: "english",
}

// KeywordResult is one opaque keyword research result.
type KeywordResult = map[string]any

// State is the whole pipeline state. It is a plain value: reducing an action
// returns a new State and never mutates the old one.
type State struct {
	CurrentStep      Step            `json:"currentStep"`
	SelectedKeyword  string          `json:"selectedKeyword"`
	KeywordResults   []KeywordResult `json:"keywordResults"`
	SelectedTitle    string          `json:"selectedTitle"`
	GeneratedTitles  []string        `json:"generatedTitles"`
	GeneratedContent string          `json:"generatedContent"`
	Settings         Settings        `json:"settings"`
	History          History         `json:"history"`
}

// InitialState returns the state a new pipeline starts in and Reset returns
// to.
func InitialState() State {
	return State{
		CurrentStep:     StepKeyword,
		KeywordResults:  []KeywordResult{},
		GeneratedTitles: []string{},
		Settings:        DefaultSettings,
	}
}

// Draft is the editable part of a State: what a user would lose on a crash.
type Draft struct {
	Keyword  string   `json:"keyword"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Settings Settings `json:"settings"`
}

// Draft projects s onto its editable fields.
func (s State) Draft() Draft {
	return Draft{
		Keyword:  s.SelectedKeyword,
		Title:    s.SelectedTitle,
		Content:  s.GeneratedContent,
		Settings: s.Settings,
	}
}
