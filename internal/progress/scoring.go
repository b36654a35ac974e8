package progress

import "github.com/abhisek/shiwake/internal/bank"

// Award describes the outcome of recording one answer.
type Award struct {
	// Correct is this attempt's correctness.
	Correct bool

	// Awarded is true when this attempt earned XP.
	Awarded bool

	// AlreadyCorrect is true when the item had a correct record beforehand.
	AlreadyCorrect bool
}

// RecordAnswer updates the single record for ref. XP grows by one, up to
// maxXP, only when the item goes from not-correct to correct. A correct
// record never reverts.
func (s *State) RecordAnswer(ref bank.Ref, choice int, correct bool, maxXP int) Award {
	if s.index == nil {
		s.index = make(map[bank.Ref]int)
	}

	i, exists := s.index[ref]
	if !exists {
		s.index[ref] = len(s.History)
		s.History = append(s.History, AnswerRecord{
			Step:        ref.Step,
			Index:       ref.Index,
			Correct:     correct,
			ChoiceIndex: choice,
		})
		award := Award{Correct: correct, Awarded: correct}
		if award.Awarded {
			s.addXP(maxXP)
		}
		return award
	}

	prev := s.History[i]
	award := Award{
		Correct:        correct,
		Awarded:        !prev.Correct && correct,
		AlreadyCorrect: prev.Correct,
	}
	prev.Correct = prev.Correct || correct
	prev.ChoiceIndex = choice
	s.History[i] = prev

	if award.Awarded {
		s.addXP(maxXP)
	}
	return award
}

func (s *State) addXP(maxXP int) {
	s.XP++
	s.clampXP(maxXP)
}

func (s *State) clampXP(maxXP int) {
	if s.XP < 0 {
		s.XP = 0
	}
	if maxXP >= 0 && s.XP > maxXP {
		s.XP = maxXP
	}
}

// IsCorrect reports whether ref has a correct record.
func (s *State) IsCorrect(ref bank.Ref) bool {
	rec, ok := s.Record(ref)
	return ok && rec.Correct
}

// StepCorrect counts distinct items in step with a correct record.
func (s *State) StepCorrect(step int) int {
	n := 0
	for _, rec := range s.History {
		if rec.Step == step && rec.Correct {
			n++
		}
	}
	return n
}

// TotalCorrect counts correct items across all steps.
func (s *State) TotalCorrect() int {
	n := 0
	for _, rec := range s.History {
		if rec.Correct {
			n++
		}
	}
	return n
}

// StepComplete reports whether every item of a step of the given size is
// correct. Records beyond size, left over from a larger bank, are ignored.
func (s *State) StepComplete(step, size int) bool {
	n := 0
	for _, rec := range s.History {
		if rec.Step == step && rec.Correct && rec.Index < size {
			n++
		}
	}
	return n == size
}

// StepSummary maps step number to its correct count, for steps with any
// correct record.
func (s *State) StepSummary() map[int]int {
	summary := make(map[int]int)
	for _, rec := range s.History {
		if rec.Correct {
			summary[rec.Step]++
		}
	}
	return summary
}
