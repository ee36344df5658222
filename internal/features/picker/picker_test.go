package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomIDRoundTrip(t *testing.T) {
	id := MakeChoiceCustomID("prompt-123", 2)
	assert.Equal(t, "music_choice:prompt-123:2", id)

	promptID, action, ok := ParseCustomID(id)
	require.True(t, ok)
	assert.Equal(t, "prompt-123", promptID)
	assert.Equal(t, "2", action)
}

func TestCancelCustomID(t *testing.T) {
	promptID, action, ok := ParseCustomID(MakeCancelCustomID("prompt-123"))
	require.True(t, ok)
	assert.Equal(t, "prompt-123", promptID)
	assert.Equal(t, CancelAction, action)
}

func TestParseCustomIDRejectsForeignIDs(t *testing.T) {
	tests := []struct {
		name     string
		customID string
	}{
		{name: "different feature", customID: "dashboard:prompt-123:2"},
		{name: "missing action", customID: "music_choice:prompt-123"},
		{name: "extra segment", customID: "music_choice:prompt-123:2:junk"},
		{name: "empty", customID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ParseCustomID(tt.customID)
			assert.False(t, ok)
		})
	}
}
