package testutils

import (
	"fmt"
	"io"
	"sync"

	"opshell/pkg/optypes"
)

// Call kinds recorded by ScriptedPrompter.
const (
	CallSelect  = "select"
	CallSearch  = "search"
	CallConfirm = "confirm"
	CallAsk     = "ask"
)

// PromptCall records one prompt shown to the operator.
type PromptCall struct {
	Kind    string
	Label   string
	Options []optypes.Option
}

// Answer is one scripted response. Value answers Select/Search/Ask, Yes answers
// Confirm. Query is passed to the search provider. Err is returned as-is.
type Answer struct {
	Value string
	Yes   bool
	Query string
	None  bool
	Err   error
}

// ScriptedPrompter replays answers in order and returns io.EOF once they run out.
type ScriptedPrompter struct {
	mu      sync.Mutex
	answers []Answer
	Calls   []PromptCall
}

// NewScriptedPrompter creates a prompter replaying answers.
func NewScriptedPrompter(answers ...Answer) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// Choose answers a Select or Ask with value.
func Choose(value string) Answer { return Answer{Value: value} }

// Yes answers a Confirm affirmatively.
func Yes() Answer { return Answer{Yes: true} }

// No declines a Confirm.
func No() Answer { return Answer{Yes: false} }

// Find answers a Search by typing query and picking value.
func Find(query, value string) Answer { return Answer{Query: query, Value: value} }

// FindNothing answers a Search by typing query and picking nothing.
func FindNothing(query string) Answer { return Answer{Query: query, None: true} }

// Remaining returns how many answers have not been consumed.
func (p *ScriptedPrompter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}

func (p *ScriptedPrompter) next(call PromptCall) (Answer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = append(p.Calls, call)
	if len(p.answers) == 0 {
		return Answer{}, io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, a.Err
}

// Select implements optypes.Prompter. The answer must be one of the offered keys.
func (p *ScriptedPrompter) Select(label string, options []optypes.Option) (string, error) {
	a, err := p.next(PromptCall{Kind: CallSelect, Label: label, Options: options})
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if o.Key == a.Value {
			return a.Value, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q is not among the %d options of %q", a.Value, len(options), label)
}

// Search implements optypes.Prompter. The provider is called with the scripted query.
func (p *ScriptedPrompter) Search(label, _ string, provider optypes.OptionsProvider) (string, bool, error) {
	p.mu.Lock()
	query := ""
	if len(p.answers) > 0 {
		query = p.answers[0].Query
	}
	p.mu.Unlock()

	options := provider(query)
	a, err := p.next(PromptCall{Kind: CallSearch, Label: label, Options: options})
	if err != nil {
		return "", false, err
	}
	if a.None {
		return "", false, nil
	}
	for _, o := range options {
		if o.Key == a.Value {
			return a.Value, true, nil
		}
	}
	return "", false, fmt.Errorf("scripted search answer %q not offered for query %q", a.Value, query)
}

// Confirm implements optypes.Prompter.
func (p *ScriptedPrompter) Confirm(label string, _ bool) (bool, error) {
	a, err := p.next(PromptCall{Kind: CallConfirm, Label: label})
	if err != nil {
		return false, err
	}
	return a.Yes, nil
}

// Ask implements optypes.Prompter.
func (p *ScriptedPrompter) Ask(label string) (string, error) {
	a, err := p.next(PromptCall{Kind: CallAsk, Label: label})
	if err != nil {
		return "", err
	}
	return a.Value, nil
}

// CallsOf returns the recorded calls of one kind.
func (p *ScriptedPrompter) CallsOf(kind string) []PromptCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []PromptCall
	for _, c := range p.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
