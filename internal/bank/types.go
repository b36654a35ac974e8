package bank

import "fmt"

// Shape identifies which document layout a bank was loaded from.
type Shape string

const (
	ShapeSteps Shape = "steps" // {"steps": [{title, topic, items: [...]}]}
	ShapeDays  Shape = "days"  // {"day1": {...}, "day2": [...]} legacy layout
)

// Item is a single multiple-choice question.
type Item struct {
	Prompt  string
	Choices []string
	Answer  int // 0-based index into Choices
	Explain string
	Hint    string
}

// IsCorrect reports whether choice is the correct option.
func (it Item) IsCorrect(choice int) bool {
	return choice == it.Answer
}

// Step is an ordered bucket of items, the unit of completion.
type Step struct {
	Number int // 1-based
	Label  string
	Title  string
	Topic  string
	Items  []Item
}

// Len returns the number of items in the step.
func (s *Step) Len() int {
	return len(s.Items)
}

// LastIndex returns the last valid item index, or 0 for an empty step.
func (s *Step) LastIndex() int {
	if len(s.Items) == 0 {
		return 0
	}
	return len(s.Items) - 1
}

// Ref identifies an item by step number and index within the step.
type Ref struct {
	Step  int
	Index int
}

func (r Ref) String() string {
	return fmt.Sprintf("%d/%d", r.Step, r.Index)
}

// Bank is the normalized, read-only question bank.
type Bank struct {
	Source  string
	Shape   Shape
	Version string
	Steps   []Step
}

// Len returns the number of steps.
func (b *Bank) Len() int {
	return len(b.Steps)
}

// Step returns the step with the given 1-based number.
func (b *Bank) Step(n int) (*Step, bool) {
	if n < 1 || n > len(b.Steps) {
		return nil, false
	}
	return &b.Steps[n-1], true
}

// Item returns the item at ref.
func (b *Bank) Item(ref Ref) (Item, bool) {
	st, ok := b.Step(ref.Step)
	if !ok || ref.Index < 0 || ref.Index >= len(st.Items) {
		return Item{}, false
	}
	return st.Items[ref.Index], true
}

// TotalItems returns the item count across all steps. This is also the XP cap.
func (b *Bank) TotalItems() int {
	n := 0
	for i := range b.Steps {
		n += len(b.Steps[i].Items)
	}
	return n
}

// Refs enumerates every item in bank order.
func (b *Bank) Refs() []Ref {
	refs := make([]Ref, 0, b.TotalItems())
	for _, st := range b.Steps {
		for i := range st.Items {
			refs = append(refs, Ref{Step: st.Number, Index: i})
		}
	}
	return refs
}
