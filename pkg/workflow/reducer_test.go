package workflow

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func reduceAll(s State, actions ...Action) State {
	at := t0
	for _, a := range actions {
		at = at.Add(time.Second)
		s = Reduce(s, a, at)
	}
	return s
}

func TestReduce_SetKeywordAppendsHistoryThenSetsField(t *testing.T) {
	s := Reduce(InitialState(), SetKeyword{Keyword: "seo"}, t0)

	require.Equal(t, "seo", s.SelectedKeyword)
	require.Equal(t, 1, s.History.Len())
	last, ok := s.History.Last()
	require.True(t, ok)
	require.Equal(t, HistoryEntry{Step: StepKeyword, Timestamp: t0.UnixMilli(), Data: "seo"}, last)
	require.Equal(t, StepKeyword, s.CurrentStep, "selecting does not move the step")
}

func TestReduce_HistoryProducingActions(t *testing.T) {
	s := reduceAll(InitialState(),
		SetKeyword{Keyword: "seo"},
		SetTitle{Title: "Top 10 Tips"},
		SetContent{Content: "..."},
	)

	entries := s.History.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, []Step{StepKeyword, StepTitle, StepContent},
		[]Step{entries[0].Step, entries[1].Step, entries[2].Step})
	require.Equal(t, "Top 10 Tips", entries[1].Data)
	require.Equal(t, "Top 10 Tips", s.SelectedTitle)
	require.Equal(t, "...", s.GeneratedContent)
}

func TestReduce_ReplacingActionsDoNotTouchHistory(t *testing.T) {
	results := []KeywordResult{{"keyword": "seo", "volume": 1200}}
	s := reduceAll(InitialState(),
		SetKeywordResults{Results: results},
		SetTitles{Titles: []string{"a", "b"}},
		UpdateSettings{Patch: SettingsPatch{Tone: Setting("casual")}},
		SetStep{Step: StepContent},
	)

	require.Equal(t, 0, s.History.Len())
	require.Equal(t, results, s.KeywordResults)
	require.Equal(t, []string{"a", "b"}, s.GeneratedTitles)
	require.Equal(t, StepContent, s.CurrentStep)
}

func TestReduce_UpdateSettingsShallowMerge(t *testing.T) {
	s := Reduce(InitialState(), UpdateSettings{Patch: SettingsPatch{
		Tone:     Setting("friendly"),
		Language: Setting("german"),
	}}, t0)

	require.Equal(t, Settings{Tone: "friendly", Length: "medium", Language: "german"}, s.Settings)

	s = Reduce(s, UpdateSettings{}, t0)
	require.Equal(t, Settings{Tone: "friendly", Length: "medium", Language: "german"}, s.Settings)
}

func TestReduce_SetStepIgnoresGuardButRejectsUnknownSteps(t *testing.T) {
	s := Reduce(InitialState(), SetStep{Step: StepPublish}, t0)
	require.Equal(t, StepPublish, s.CurrentStep, "explicit step change is unguarded")

	s = Reduce(s, SetStep{Step: Step("review")}, t0)
	require.Equal(t, StepPublish, s.CurrentStep)
}

func TestReduce_NextAndPrevClamp(t *testing.T) {
	s := InitialState()

	s = Reduce(s, PrevStep{}, t0)
	require.Equal(t, StepKeyword, s.CurrentStep, "prev at keyword stays at keyword")

	want := []Step{StepTitle, StepContent, StepPublish, StepPublish, StepPublish}
	for _, w := range want {
		s = Reduce(s, NextStep{}, t0)
		require.Equal(t, w, s.CurrentStep)
	}

	for _, w := range []Step{StepContent, StepTitle, StepKeyword, StepKeyword} {
		s = Reduce(s, PrevStep{}, t0)
		require.Equal(t, w, s.CurrentStep)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := reduceAll(InitialState(), SetKeyword{Keyword: "a"})
	snapshot, err := json.Marshal(before)
	require.NoError(t, err)

	_ = Reduce(before, SetKeyword{Keyword: "b"}, t0)
	_ = Reduce(before, UpdateSettings{Patch: SettingsPatch{Tone: Setting("x")}}, t0)

	after, err := json.Marshal(before)
	require.NoError(t, err)
	require.JSONEq(t, string(snapshot), string(after))
}

func TestReduce_ResetReturnsInitialState(t *testing.T) {
	s := reduceAll(InitialState(),
		SetKeyword{Keyword: "seo"},
		SetKeywordResults{Results: []KeywordResult{{"k": "v"}}},
		SetTitle{Title: "t"},
		SetTitles{Titles: []string{"t"}},
		SetContent{Content: "c"},
		UpdateSettings{Patch: SettingsPatch{Length: Setting("long")}},
		NextStep{}, NextStep{},
		Reset{},
	)

	require.Equal(t, InitialState(), s)

	got, err := json.Marshal(s)
	require.NoError(t, err)
	want, err := json.Marshal(InitialState())
	require.NoError(t, err)
	require.Equal(t, string(want), string(got), "reset state must serialize byte-for-byte like the initial state")
}

func TestInitialState_JSON(t *testing.T) {
	got, err := json.Marshal(InitialState())
	require.NoError(t, err)
	require.JSONEq(t, `{
		"currentStep": "keyword",
		"selectedKeyword": "",
		"keywordResults": [],
		"selectedTitle": "",
		"generatedTitles": [],
		"generatedContent": "",
		"settings": {"tone": "professional", "length": "medium", "language": "english"},
		"history": []
	}`, string(got))
}

func TestReduce_RestoreReplacesWholeState(t *testing.T) {
	replacement := reduceAll(InitialState(), SetKeyword{Keyword: "x"}, NextStep{})
	s := Reduce(reduceAll(InitialState(), SetTitle{Title: "y"}), Restore{State: replacement}, t0)
	require.Equal(t, replacement, s)

	bad := replacement
	bad.CurrentStep = "nowhere"
	require.Equal(t, s, Reduce(s, Restore{State: bad}, t0), "restore with unknown step is ignored")
}

type unknownAction struct{ SetStep }

func TestReduce_PanicsOnForeignAction(t *testing.T) {
	require.Panics(t, func() {
		Reduce(InitialState(), unknownAction{}, t0)
	})
}

// randomAction draws from every action type.
func randomAction(r *rand.Rand) Action {
	words := []string{"", "seo", "go", "Top 10 Tips", "..."}
	w := words[r.IntN(len(words))]
	switch r.IntN(11) {
	case 0:
		return SetStep{Step: Steps[r.IntN(len(Steps))]}
	case 1:
		return SetKeyword{Keyword: w}
	case 2:
		return SetKeywordResults{Results: []KeywordResult{{"keyword": w}}}
	case 3:
		return SetTitle{Title: w}
	case 4:
		return SetTitles{Titles: []string{w}}
	case 5:
		return SetContent{Content: w}
	case 6:
		return UpdateSettings{Patch: SettingsPatch{Tone: Setting(w)}}
	case 7:
		return NextStep{}
	case 8:
		return PrevStep{}
	case 9:
		if r.IntN(4) == 0 {
			return Reset{}
		}
		return NextStep{}
	default:
		return SetKeyword{Keyword: w}
	}
}

func TestReduce_InvariantsHoldForRandomSequences(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for run := 0; run < 200; run++ {
		s := InitialState()
		at := t0
		var expected []HistoryEntry

		for i := 0; i < 60; i++ {
			a := randomAction(r)
			at = at.Add(time.Millisecond)
			s = Reduce(s, a, at)

			switch a := a.(type) {
			case SetKeyword:
				expected = append(expected, HistoryEntry{StepKeyword, at.UnixMilli(), a.Keyword})
			case SetTitle:
				expected = append(expected, HistoryEntry{StepTitle, at.UnixMilli(), a.Title})
			case SetContent:
				expected = append(expected, HistoryEntry{StepContent, at.UnixMilli(), a.Content})
			case Reset:
				expected = nil
			}
			if len(expected) > HistoryCapacity {
				expected = expected[len(expected)-HistoryCapacity:]
			}

			require.LessOrEqual(t, s.History.Len(), HistoryCapacity)
			require.True(t, s.CurrentStep.Valid(), "current step %q out of range", s.CurrentStep)
			require.Equal(t, len(expected), s.History.Len())
			if len(expected) > 0 {
				require.Equal(t, expected, s.History.Entries(), "oldest entries evicted first, order preserved")
			}
		}
	}
}
