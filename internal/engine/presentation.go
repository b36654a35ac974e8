package engine

import (
	"fmt"

	"github.com/abhisek/shiwake/internal/bank"
)

// Presentation is everything the rendering side needs for one item.
type Presentation struct {
	Ref     bank.Ref
	Label   string
	Title   string
	Topic   string
	Current int
	Total   int
	Retry   bool
	Item    bank.Item
}

// ProgressText renders "current/total", prefixed with "retry" during a
// retry round.
func (p Presentation) ProgressText() string {
	if p.Retry {
		return fmt.Sprintf("retry %d/%d", p.Current, p.Total)
	}
	return fmt.Sprintf("%d/%d", p.Current, p.Total)
}

// Current returns the presented item, or false once the bank is exhausted.
func (e *Engine) Current() (Presentation, bool) {
	if e.done {
		return Presentation{}, false
	}
	ref, ok := e.activeRef()
	if !ok {
		return Presentation{}, false
	}
	st, _ := e.bank.Step(ref.Step)
	item, _ := e.bank.Item(ref)

	p := Presentation{
		Ref:   ref,
		Label: st.Label,
		Title: st.Title,
		Topic: st.Topic,
		Item:  item,
	}

	switch {
	case e.retryActive():
		p.Retry = true
		p.Current = e.retry.Cursor + 1
		p.Total = len(e.retry.Pending)
	case e.hold:
		p.Current = st.Len()
		p.Total = st.Len()
	default:
		p.Current = ref.Index + 1
		p.Total = st.Len()
	}
	return p, true
}
