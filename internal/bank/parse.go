package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the newest bank document major version understood here.
const SupportedMajor = "v1"

var dayKeyPattern = regexp.MustCompile(`^day([0-9]+)$`)

type stepDoc struct {
	Title string    `json:"title"`
	Topic string    `json:"topic"`
	Items []itemDoc `json:"items"`
}

type itemDoc struct {
	Q       string   `json:"q"`
	Choices []string `json:"choices"`
	Answer  int      `json:"answer"`
	Explain string   `json:"explain"`
	Hint    string   `json:"hint"`
}

type dayItemDoc struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   int      `json:"answer"`
	Hint     string   `json:"hint"`
	Explain  string   `json:"explain"`
}

// Parse validates a bank document and normalizes it into a Bank. The shape
// is resolved once here; callers never see the difference.
func Parse(data []byte, source string) (*Bank, error) {
	invalid := func(err error) error {
		return &ValidationError{Source: source, Err: err}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, invalid(fmt.Errorf("invalid JSON: %w", err))
	}
	if err := validateDocument(doc); err != nil {
		return nil, invalid(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid(fmt.Errorf("decode document: %w", err))
	}

	b := &Bank{Source: source}
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &b.Version); err != nil {
			return nil, invalid(fmt.Errorf("decode version: %w", err))
		}
		if err := checkVersion(b.Version); err != nil {
			return nil, invalid(err)
		}
	}

	shape, dayKeys, err := detectShape(raw)
	if err != nil {
		return nil, invalid(err)
	}
	b.Shape = shape

	switch shape {
	case ShapeSteps:
		err = b.loadSteps(raw["steps"])
	case ShapeDays:
		err = b.loadDays(raw, dayKeys)
	}
	if err != nil {
		return nil, invalid(err)
	}
	if len(b.Steps) == 0 {
		return nil, invalid(ErrEmptyBank)
	}
	return b, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Compare(semver.Major(v), SupportedMajor) > 0 {
		return fmt.Errorf("%w: %s (newest supported major is %s)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

// detectShape returns the bank layout and, for the day layout, the day keys
// in numeric order.
func detectShape(raw map[string]json.RawMessage) (Shape, []string, error) {
	_, hasSteps := raw["steps"]

	type dayKey struct {
		key string
		n   int
	}
	var days []dayKey
	seen := make(map[int]string)
	for k := range raw {
		m := dayKeyPattern.FindStringSubmatch(k)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", nil, fmt.Errorf("day key %q: %w", k, err)
		}
		if prev, ok := seen[n]; ok {
			first, second := prev, k
			if second < first {
				first, second = second, first
			}
			return "", nil, fmt.Errorf("%w: %q and %q are both day %d", ErrDuplicateDay, first, second, n)
		}
		seen[n] = k
		days = append(days, dayKey{key: k, n: n})
	}

	switch {
	case hasSteps && len(days) > 0:
		return "", nil, ErrMixedShape
	case hasSteps:
		return ShapeSteps, nil, nil
	case len(days) > 0:
		sort.Slice(days, func(i, j int) bool { return days[i].n < days[j].n })
		keys := make([]string, len(days))
		for i, d := range days {
			keys[i] = d.key
		}
		return ShapeDays, keys, nil
	default:
		return "", nil, ErrUnknownShape
	}
}

func (b *Bank) loadSteps(data json.RawMessage) error {
	var steps []stepDoc
	if err := json.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("decode steps: %w", err)
	}
	for i, sd := range steps {
		n := i + 1
		st := Step{
			Number: n,
			Label:  fmt.Sprintf("Step %d", n),
			Title:  sd.Title,
			Topic:  sd.Topic,
		}
		if st.Title == "" {
			st.Title = st.Label
		}
		for j, it := range sd.Items {
			item := Item{Prompt: it.Q, Choices: it.Choices, Answer: it.Answer, Explain: it.Explain, Hint: it.Hint}
			if err := checkItem(item); err != nil {
				return fmt.Errorf("steps[%d].items[%d]: %w", i, j, err)
			}
			st.Items = append(st.Items, item)
		}
		b.Steps = append(b.Steps, st)
	}
	return nil
}

func (b *Bank) loadDays(raw map[string]json.RawMessage, keys []string) error {
	for i, key := range keys {
		docs, err := decodeDay(raw[key])
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		n := i + 1
		st := Step{
			Number: n,
			Label:  fmt.Sprintf("Day %d", n),
		}
		st.Title = st.Label
		for j, d := range docs {
			item := Item{Prompt: d.Question, Choices: d.Choices, Answer: d.Answer, Explain: d.Explain, Hint: d.Hint}
			if err := checkItem(item); err != nil {
				return fmt.Errorf("%s[%d]: %w", key, j, err)
			}
			st.Items = append(st.Items, item)
		}
		b.Steps = append(b.Steps, st)
	}
	return nil
}

// decodeDay accepts either a single item object or an array of them.
func decodeDay(data json.RawMessage) ([]dayItemDoc, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []dayItemDoc
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}
	var d dayItemDoc
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, err
	}
	return []dayItemDoc{d}, nil
}

func checkItem(it Item) error {
	if it.Answer < 0 || it.Answer >= len(it.Choices) {
		return fmt.Errorf("answer index %d out of range for %d choices", it.Answer, len(it.Choices))
	}
	return nil
}
