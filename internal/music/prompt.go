package music

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxChoices caps how many candidates a single prompt presents.
const MaxChoices = 5

type Choice struct {
	Title  string
	Artist string
}

type OutcomeKind int

const (
	OutcomeSelected OutcomeKind = iota
	OutcomeCancelled
	OutcomeTimedOut
)

type Outcome struct {
	Kind  OutcomeKind
	Index int
}

// Prompt is a one-shot interactive selection. The first valid activation
// settles it; everything after is a no-op.
type Prompt struct {
	id      string
	choices []Choice

	mu      sync.Mutex
	settled bool
	result  chan Outcome
}

func NewPrompt(choices []Choice) *Prompt {
	if len(choices) > MaxChoices {
		choices = choices[:MaxChoices]
	}
	return &Prompt{
		id:      uuid.NewString(),
		choices: choices,
		result:  make(chan Outcome, 1),
	}
}

func (p *Prompt) ID() string {
	return p.id
}

func (p *Prompt) Choices() []Choice {
	return p.choices
}

// Resolve records a selection. It reports false when the index is out of
// range or the prompt has already settled.
func (p *Prompt) Resolve(index int) bool {
	if index < 0 || index >= len(p.choices) {
		return false
	}
	return p.settle(Outcome{Kind: OutcomeSelected, Index: index})
}

// Cancel records an explicit cancellation. It reports false when the prompt
// has already settled.
func (p *Prompt) Cancel() bool {
	return p.settle(Outcome{Kind: OutcomeCancelled})
}

func (p *Prompt) settle(outcome Outcome) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.settled {
		return false
	}
	p.settled = true
	p.result <- outcome
	return true
}

// Await blocks until the prompt settles or the bounded wait elapses. On
// timeout the prompt becomes inert: later activations are rejected.
func (p *Prompt) Await(ctx context.Context, timeout time.Duration) Outcome {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case outcome := <-p.result:
		return outcome
	case <-timer.C:
		if p.settle(Outcome{Kind: OutcomeTimedOut}) {
			return Outcome{Kind: OutcomeTimedOut}
		}
		// An activation won the race against the timer.
		return <-p.result
	case <-ctx.Done():
		if p.settle(Outcome{Kind: OutcomeCancelled}) {
			return Outcome{Kind: OutcomeCancelled}
		}
		return <-p.result
	}
}

// PromptRegistry tracks prompts awaiting an interaction, keyed by prompt ID.
type PromptRegistry struct {
	mu      sync.RWMutex
	pending map[string]*Prompt
}

func NewPromptRegistry() *PromptRegistry {
	return &PromptRegistry{
		pending: make(map[string]*Prompt),
	}
}

func (r *PromptRegistry) Register(p *Prompt) {
	r.mu.Lock()
	r.pending[p.ID()] = p
	r.mu.Unlock()
}

func (r *PromptRegistry) Remove(id string) {
	r.mu.Lock()
	delete(r.pending, id)
	r.mu.Unlock()
}

func (r *PromptRegistry) Get(id string) (*Prompt, bool) {
	r.mu.RLock()
	p, ok := r.pending[id]
	r.mu.RUnlock()
	return p, ok
}

// Chooser narrows 2..5 candidates down to one via user interaction. It
// returns ErrCancelled when the user cancels or the wait elapses.
type Chooser interface {
	Choose(ctx context.Context, choices []Choice) (int, error)
}
