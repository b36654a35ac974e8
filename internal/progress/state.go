package progress

import (
	"encoding/json"
	"strconv"

	"github.com/abhisek/shiwake/internal/bank"
)

// StateKey is the storage key the persisted state lives under.
const StateKey = "simoffice-shiwake-steps"

// ProfileKey namespaces StateKey for a named learner profile.
// An empty profile yields StateKey itself.
func ProfileKey(profile string) string {
	if profile == "" {
		return StateKey
	}
	return StateKey + ":" + profile
}

// AnswerRecord is the durable answer outcome for one item.
type AnswerRecord struct {
	Step        int  `json:"step"`
	Index       int  `json:"idx"`
	Correct     bool `json:"correct"`
	ChoiceIndex int  `json:"choiceIndex"`
}

// Ref returns the item this record belongs to.
func (r AnswerRecord) Ref() bank.Ref {
	return bank.Ref{Step: r.Step, Index: r.Index}
}

// State is the learner's cumulative progress. It holds at most one
// AnswerRecord per item.
type State struct {
	CurrentStep int
	IdxInStep   int
	XP          int
	History     []AnswerRecord

	index map[bank.Ref]int // position of each record in History
}

// NewState returns the default initial state.
func NewState() *State {
	return &State{
		CurrentStep: 1,
		History:     []AnswerRecord{},
		index:       make(map[bank.Ref]int),
	}
}

// Record returns the answer record for ref, if any.
func (s *State) Record(ref bank.Ref) (AnswerRecord, bool) {
	i, ok := s.index[ref]
	if !ok {
		return AnswerRecord{}, false
	}
	return s.History[i], true
}

// persistedState is the on-disk layout. currentDay is the legacy name for
// currentStep; stepSummary is derived and only written for compatibility.
type persistedState struct {
	CurrentStep *int           `json:"currentStep,omitempty"`
	CurrentDay  *int           `json:"currentDay,omitempty"`
	IdxInStep   int            `json:"idxInStep"`
	XP          int            `json:"xp"`
	History     []AnswerRecord `json:"history"`
	StepSummary map[string]int `json:"stepSummary,omitempty"`
}

// Encode serializes the state to its persisted JSON layout.
func (s *State) Encode() ([]byte, error) {
	cur := s.CurrentStep
	summary := make(map[string]int)
	for step, n := range s.StepSummary() {
		summary[strconv.Itoa(step)] = n
	}
	history := s.History
	if history == nil {
		history = []AnswerRecord{}
	}
	return json.Marshal(persistedState{
		CurrentStep: &cur,
		IdxInStep:   s.IdxInStep,
		XP:          s.XP,
		History:     history,
		StepSummary: summary,
	})
}

// Decode parses a persisted state. Absent or malformed data yields the
// default state; ok reports whether data was used.
func Decode(data []byte) (st *State, ok bool) {
	if len(data) == 0 {
		return NewState(), false
	}
	var p persistedState
	if err := json.Unmarshal(data, &p); err != nil {
		return NewState(), false
	}

	st = NewState()
	switch {
	case p.CurrentStep != nil:
		st.CurrentStep = *p.CurrentStep
	case p.CurrentDay != nil:
		st.CurrentStep = *p.CurrentDay
	}
	if st.CurrentStep < 1 {
		st.CurrentStep = 1
	}
	st.IdxInStep = max(p.IdxInStep, 0)
	st.XP = max(p.XP, 0)

	// Merge duplicates so the one-record-per-item invariant holds even for
	// state written by older revisions.
	for _, rec := range p.History {
		ref := rec.Ref()
		if i, exists := st.index[ref]; exists {
			prev := st.History[i]
			prev.Correct = prev.Correct || rec.Correct
			prev.ChoiceIndex = rec.ChoiceIndex
			st.History[i] = prev
			continue
		}
		st.index[ref] = len(st.History)
		st.History = append(st.History, rec)
	}
	return st, true
}
