package workflow

// Step is one stage of the content pipeline.
type Step string

const (
	StepKeyword Step = "keyword"
	StepTitle   Step = "title"
	StepContent Step = "content"
	StepPublish Step = "publish"
)

// Steps is the fixed pipeline order.
var Steps = []Step{StepKeyword, StepTitle, StepContent, StepPublish}

// Index returns the position of s in Steps, or -1 for an unknown step.
func (s Step) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the four pipeline steps.
func (s Step) Valid() bool {
	return s.Index() >= 0
}

// Next returns the step after s, clamped at StepPublish.
func (s Step) Next() Step {
	return Steps[clamp(s.Index()+1)]
}

// Prev returns the step before s, clamped at StepKeyword.
func (s Step) Prev() Step {
	return Steps[clamp(s.Index()-1)]
}

func clamp(i int) int {
	switch {
	case i < 0:
		return 0
	case i >= len(Steps):
		return len(Steps) - 1
	default:
		return i
	}
}

// ParseStep returns the Step named name.
func ParseStep(name string) (Step, bool) {
	s := Step(name)
	return s, s.Valid()
}
