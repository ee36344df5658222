package music

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoChoices() []Choice {
	return []Choice{
		{Title: "First", Artist: "A"},
		{Title: "Second", Artist: "B"},
	}
}

func TestPromptResolveSettlesOnce(t *testing.T) {
	p := NewPrompt(twoChoices())

	assert.True(t, p.Resolve(1))
	assert.False(t, p.Resolve(0), "second activation must be rejected")
	assert.False(t, p.Cancel(), "cancel after resolve must be rejected")

	outcome := p.Await(context.Background(), time.Second)
	assert.Equal(t, OutcomeSelected, outcome.Kind)
	assert.Equal(t, 1, outcome.Index)
}

func TestPromptRejectsOutOfRangeIndex(t *testing.T) {
	p := NewPrompt(twoChoices())

	assert.False(t, p.Resolve(-1))
	assert.False(t, p.Resolve(2))

	// The prompt is still live after invalid activations.
	assert.True(t, p.Resolve(0))
}

func TestPromptCancel(t *testing.T) {
	p := NewPrompt(twoChoices())

	require.True(t, p.Cancel())

	outcome := p.Await(context.Background(), time.Second)
	assert.Equal(t, OutcomeCancelled, outcome.Kind)
}

func TestPromptTimeout(t *testing.T) {
	p := NewPrompt(twoChoices())

	outcome := p.Await(context.Background(), 10*time.Millisecond)
	assert.Equal(t, OutcomeTimedOut, outcome.Kind)

	// A late click lands on an inert prompt.
	assert.False(t, p.Resolve(0))
}

func TestPromptAwaitReturnsConcurrentActivation(t *testing.T) {
	p := NewPrompt(twoChoices())

	go func() {
		time.Sleep(20 * time.Millisecond)
		p.Resolve(0)
	}()

	outcome := p.Await(context.Background(), time.Second)
	assert.Equal(t, OutcomeSelected, outcome.Kind)
	assert.Equal(t, 0, outcome.Index)
}

func TestPromptCapsChoices(t *testing.T) {
	choices := make([]Choice, MaxChoices+3)
	for i := range choices {
		choices[i] = Choice{Title: "t"}
	}

	p := NewPrompt(choices)
	assert.Len(t, p.Choices(), MaxChoices)
	assert.False(t, p.Resolve(MaxChoices), "index beyond the cap must be rejected")
}

func TestPromptRegistryLifecycle(t *testing.T) {
	registry := NewPromptRegistry()
	p := NewPrompt(twoChoices())

	_, ok := registry.Get(p.ID())
	assert.False(t, ok)

	registry.Register(p)
	got, ok := registry.Get(p.ID())
	require.True(t, ok)
	assert.Same(t, p, got)

	registry.Remove(p.ID())
	_, ok = registry.Get(p.ID())
	assert.False(t, ok)
}
