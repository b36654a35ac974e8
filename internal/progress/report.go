package progress

import (
	"github.com/abhisek/shiwake/internal/bank"
)

// StepReport is one row of the progress summary.
type StepReport struct {
	Number   int
	Label    string
	Title    string
	Topic    string
	Correct  int
	Total    int
	Complete bool
}

// Report aggregates progress against a bank. Only records that still map to
// an item in the bank are counted.
type Report struct {
	Steps   []StepReport
	Correct int
	Total   int
	XP      int
	MaxXP   int
}

// Report builds the summary for b from the live state.
func (s *Service) Report(b *bank.Bank) Report {
	r := Report{
		Total: b.TotalItems(),
		XP:    s.XP(),
		MaxXP: s.maxXP,
	}
	for i := range b.Steps {
		st := &b.Steps[i]
		row := StepReport{
			Number: st.Number,
			Label:  st.Label,
			Title:  st.Title,
			Topic:  st.Topic,
			Total:  st.Len(),
		}
		for j := range st.Items {
			if s.IsCorrect(bank.Ref{Step: st.Number, Index: j}) {
				row.Correct++
			}
		}
		row.Complete = row.Total > 0 && row.Correct == row.Total
		r.Correct += row.Correct
		r.Steps = append(r.Steps, row)
	}
	return r
}
