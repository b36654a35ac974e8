package progress

import (
	"reflect"
	"testing"

	"github.com/abhisek/shiwake/internal/bank"
)

func TestRecordAnswer_FirstAttempt(t *testing.T) {
	tests := []struct {
		name      string
		correct   bool
		wantXP    int
		wantAward bool
	}{
		{"correct", true, 1, true},
		{"wrong", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			award := s.RecordAnswer(bank.Ref{Step: 1, Index: 0}, 2, tt.correct, 10)

			if award.Awarded != tt.wantAward {
				t.Errorf("awarded = %v, want %v", award.Awarded, tt.wantAward)
			}
			if award.AlreadyCorrect {
				t.Error("first attempt cannot be already correct")
			}
			if s.XP != tt.wantXP {
				t.Errorf("xp = %d, want %d", s.XP, tt.wantXP)
			}
			if len(s.History) != 1 {
				t.Fatalf("history len = %d, want 1", len(s.History))
			}
			want := AnswerRecord{Step: 1, Index: 0, Correct: tt.correct, ChoiceIndex: 2}
			if s.History[0] != want {
				t.Errorf("record = %+v, want %+v", s.History[0], want)
			}
		})
	}
}

func TestRecordAnswer_WrongThenCorrectAwardsOnce(t *testing.T) {
	s := NewState()
	ref := bank.Ref{Step: 2, Index: 3}

	if s.RecordAnswer(ref, 0, false, 10).Awarded {
		t.Error("wrong answer awarded XP")
	}
	if !s.RecordAnswer(ref, 1, true, 10).Awarded {
		t.Error("first correct answer not awarded")
	}
	if s.RecordAnswer(ref, 1, true, 10).Awarded {
		t.Error("repeat correct answer awarded XP")
	}

	if s.XP != 1 {
		t.Errorf("xp = %d, want 1", s.XP)
	}
	if len(s.History) != 1 || !s.History[0].Correct {
		t.Errorf("history = %+v, want one correct record", s.History)
	}
}

func TestRecordAnswer_CorrectnessIsMonotonic(t *testing.T) {
	s := NewState()
	ref := bank.Ref{Step: 1, Index: 1}

	s.RecordAnswer(ref, 0, true, 10)
	award := s.RecordAnswer(ref, 2, false, 10)

	if award.Awarded || !award.AlreadyCorrect || award.Correct {
		t.Errorf("award = %+v", award)
	}

	rec, ok := s.Record(ref)
	if !ok {
		t.Fatal("record missing")
	}
	if !rec.Correct {
		t.Error("correct record must not revert")
	}
	if rec.ChoiceIndex != 2 {
		t.Errorf("choiceIndex = %d, want 2 (last choice is always updated)", rec.ChoiceIndex)
	}
	if s.XP != 1 {
		t.Errorf("xp = %d, want 1", s.XP)
	}
}

func TestRecordAnswer_XPBound(t *testing.T) {
	s := NewState()
	for i := 0; i < 5; i++ {
		s.RecordAnswer(bank.Ref{Step: 1, Index: i}, 0, true, 3)
	}
	if s.XP != 3 {
		t.Errorf("xp = %d, want 3", s.XP)
	}
}

func TestRecordAnswer_AtMostOneAwardPerItem(t *testing.T) {
	s := NewState()
	ref := bank.Ref{Step: 1, Index: 0}
	pattern := []bool{false, true, false, true, true, false}

	awards := 0
	for i, c := range pattern {
		if s.RecordAnswer(ref, i%3, c, 100).Awarded {
			awards++
		}
	}
	if awards != 1 || s.XP != 1 {
		t.Errorf("awards = %d, xp = %d; want 1, 1", awards, s.XP)
	}
}

func TestAggregates(t *testing.T) {
	s := NewState()
	s.RecordAnswer(bank.Ref{Step: 1, Index: 0}, 0, true, 10)
	s.RecordAnswer(bank.Ref{Step: 1, Index: 1}, 0, false, 10)
	s.RecordAnswer(bank.Ref{Step: 1, Index: 2}, 0, true, 10)
	s.RecordAnswer(bank.Ref{Step: 2, Index: 0}, 0, true, 10)

	for step, want := range map[int]int{1: 2, 2: 1, 3: 0} {
		if got := s.StepCorrect(step); got != want {
			t.Errorf("StepCorrect(%d) = %d, want %d", step, got, want)
		}
	}
	if got := s.TotalCorrect(); got != 3 {
		t.Errorf("TotalCorrect = %d, want 3", got)
	}
	if s.StepComplete(1, 3) {
		t.Error("step 1 should not be complete")
	}
	if !s.StepComplete(2, 1) {
		t.Error("step 2 should be complete")
	}
	if got, want := s.StepSummary(), map[int]int{1: 2, 2: 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("StepSummary = %v, want %v", got, want)
	}

	s.RecordAnswer(bank.Ref{Step: 1, Index: 1}, 1, true, 10)
	if !s.StepComplete(1, 3) {
		t.Error("step 1 should be complete after the retry")
	}
}
