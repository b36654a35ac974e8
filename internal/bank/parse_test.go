package bank

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const stepsDoc = `{
  "steps": [
    {"title": "Cash", "topic": "Cash, Sales", "items": [
      {"q": "Q1", "choices": ["a", "b", "c"], "answer": 0, "explain": "E1"},
      {"q": "Q2", "choices": ["a", "b"], "answer": 1, "explain": "E2"}
    ]},
    {"items": [
      {"q": "Q3", "choices": ["a", "b"], "answer": 1, "explain": "E3", "hint": "H3"}
    ]}
  ]
}`

const daysDoc = `{
  "day2": {"question": "D2", "choices": ["x", "y"], "answer": 1, "hint": "h2", "explain": "e2"},
  "day10": [{"question": "D10a", "choices": ["x", "y"], "answer": 0, "explain": "e10"},
            {"question": "D10b", "choices": ["x", "y", "z"], "answer": 2, "explain": "e10b"}],
  "day1": {"question": "D1", "choices": ["x", "y"], "answer": 0, "hint": "h1", "explain": "e1"}
}`

func TestParse_StepsShape(t *testing.T) {
	b, err := Parse([]byte(stepsDoc), "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Shape != ShapeSteps {
		t.Errorf("shape = %q, want %q", b.Shape, ShapeSteps)
	}
	if b.Len() != 2 {
		t.Fatalf("steps = %d, want 2", b.Len())
	}
	if b.TotalItems() != 3 {
		t.Errorf("total items = %d, want 3", b.TotalItems())
	}

	st, ok := b.Step(1)
	if !ok {
		t.Fatal("expected step 1")
	}
	if st.Title != "Cash" || st.Topic != "Cash, Sales" || st.Label != "Step 1" {
		t.Errorf("step 1 = %+v", st)
	}
	if st.Items[0].Prompt != "Q1" || st.Items[0].Explain != "E1" {
		t.Errorf("item 0 = %+v", st.Items[0])
	}

	st2, _ := b.Step(2)
	if st2.Title != "Step 2" {
		t.Errorf("untitled step title = %q, want %q", st2.Title, "Step 2")
	}
	if st2.Items[0].Hint != "H3" {
		t.Errorf("hint = %q, want H3", st2.Items[0].Hint)
	}
}

func TestParse_DaysShapeOrderedNumerically(t *testing.T) {
	b, err := Parse([]byte(daysDoc), "legacy")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Shape != ShapeDays {
		t.Errorf("shape = %q, want %q", b.Shape, ShapeDays)
	}
	if b.Len() != 3 {
		t.Fatalf("steps = %d, want 3", b.Len())
	}

	wantPrompts := [][]string{{"D1"}, {"D2"}, {"D10a", "D10b"}}
	for i, want := range wantPrompts {
		st, _ := b.Step(i + 1)
		if st.Len() != len(want) {
			t.Fatalf("day step %d: %d items, want %d", i+1, st.Len(), len(want))
		}
		for j, p := range want {
			if st.Items[j].Prompt != p {
				t.Errorf("day step %d item %d = %q, want %q", i+1, j, st.Items[j].Prompt, p)
			}
		}
	}

	st, _ := b.Step(1)
	if st.Label != "Day 1" || st.Items[0].Hint != "h1" {
		t.Errorf("day 1 = %+v", st)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"mixed shapes", `{"steps": [{"items": [{"q": "a", "choices": ["x", "y"], "answer": 0}]}], "day1": {"question": "b", "choices": ["x", "y"], "answer": 0}}`, ErrMixedShape},
		{"unknown shape", `{"lessons": []}`, ErrUnknownShape},
		{"duplicate day number", `{"day1": {"question": "one", "choices": ["x", "y"], "answer": 0}, "day01": {"question": "zero-one", "choices": ["x", "y"], "answer": 1}}`, ErrDuplicateDay},
		{"future major version", `{"version": "v2.0.0", "steps": [{"items": [{"q": "a", "choices": ["x", "y"], "answer": 0}]}]}`, ErrUnsupportedVersion},
		{"bad version", `{"version": "latest", "steps": [{"items": [{"q": "a", "choices": ["x", "y"], "answer": 0}]}]}`, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "test")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestParse_DuplicateDayRejectedEveryTime(t *testing.T) {
	doc := []byte(`{
  "day1": {"question": "one", "choices": ["x", "y"], "answer": 0},
  "day01": {"question": "zero-one", "choices": ["x", "y"], "answer": 1},
  "day2": {"question": "two", "choices": ["x", "y"], "answer": 0}
}`)
	// Map iteration order varies between runs; the outcome must not.
	for i := 0; i < 50; i++ {
		_, err := Parse(doc, "test")
		if !errors.Is(err, ErrDuplicateDay) {
			t.Fatalf("run %d: err = %v, want ErrDuplicateDay", i, err)
		}
		if !strings.Contains(err.Error(), `"day01" and "day1"`) {
			t.Fatalf("run %d: error %q does not name both keys in order", i, err)
		}
	}
}

func TestParse_SchemaFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{not json}`},
		{"missing answer", `{"steps": [{"items": [{"q": "a", "choices": ["x", "y"]}]}]}`},
		{"single choice", `{"steps": [{"items": [{"q": "a", "choices": ["x"], "answer": 0}]}]}`},
		{"empty items", `{"steps": [{"title": "t", "items": []}]}`},
		{"answer out of range", `{"steps": [{"items": [{"q": "a", "choices": ["x", "y"], "answer": 2}]}]}`},
		{"negative answer", `{"day1": {"question": "a", "choices": ["x", "y"], "answer": -1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "test")
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
		})
	}
}

func TestParse_AcceptsSupportedVersion(t *testing.T) {
	doc := `{"version": "v1.4.2", "steps": [{"items": [{"q": "a", "choices": ["x", "y"], "answer": 0}]}]}`
	b, err := Parse([]byte(doc), "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Version != "v1.4.2" {
		t.Errorf("version = %q", b.Version)
	}
}

func TestLoad_Builtins(t *testing.T) {
	for _, name := range Builtins() {
		t.Run(name, func(t *testing.T) {
			b, err := Load(context.Background(), Config{Source: BuiltinPrefix + name})
			if err != nil {
				t.Fatalf("load builtin %s: %v", name, err)
			}
			if b.TotalItems() == 0 {
				t.Error("expected items in builtin bank")
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "problems.json")
	if err := os.WriteFile(p, []byte(stepsDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(context.Background(), Config{Source: p})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Source != p {
		t.Errorf("source = %q, want %q", b.Source, p)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), Config{Source: filepath.Join(t.TempDir(), "nope.json")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestBankItemLookup(t *testing.T) {
	b, err := Parse([]byte(stepsDoc), "test")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Item(Ref{Step: 3, Index: 0}); ok {
		t.Error("expected lookup beyond bank length to fail")
	}
	if _, ok := b.Item(Ref{Step: 1, Index: 2}); ok {
		t.Error("expected lookup beyond step length to fail")
	}
	it, ok := b.Item(Ref{Step: 1, Index: 1})
	if !ok || it.Prompt != "Q2" {
		t.Errorf("item = %+v, ok = %v", it, ok)
	}
	if got := len(b.Refs()); got != 3 {
		t.Errorf("refs = %d, want 3", got)
	}
}
