package queueview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqon/groovebot/internal/music"
)

func TestBuildQueueEmbedEmpty(t *testing.T) {
	embed := BuildQueueEmbed(nil, nil)

	assert.Equal(t, "Queue", embed.Title)
	assert.Equal(t, "There is nothing in the queue.", embed.Description)
	assert.Empty(t, embed.Fields)
	assert.Nil(t, embed.Footer)
}

func TestBuildQueueEmbedNumbersEntries(t *testing.T) {
	entries := []music.Track{
		{Title: "Blue Train", Artist: "John Coltrane"},
		{Title: "Untitled Demo"},
	}

	embed := BuildQueueEmbed(nil, entries)

	assert.Equal(t, "1). Blue Train - John Coltrane\n2). Untitled Demo", embed.Description)
}

func TestBuildQueueEmbedNowPlayingField(t *testing.T) {
	now := &music.Track{Title: "Naima", Artist: "John Coltrane"}

	embed := BuildQueueEmbed(now, nil)

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Now Playing", embed.Fields[0].Name)
	assert.Equal(t, "Naima - John Coltrane", embed.Fields[0].Value)
}

func TestBuildQueueEmbedCapsAtViewLimit(t *testing.T) {
	entries := make([]music.Track, music.QueueViewLimit+4)
	for i := range entries {
		entries[i] = music.Track{Title: fmt.Sprintf("Track %d", i+1)}
	}

	embed := BuildQueueEmbed(nil, entries)

	require.NotNil(t, embed.Footer)
	assert.Equal(t, "and 4 more", embed.Footer.Text)
	assert.Contains(t, embed.Description, fmt.Sprintf("%d). Track %d", music.QueueViewLimit, music.QueueViewLimit))
	assert.NotContains(t, embed.Description, fmt.Sprintf("Track %d", music.QueueViewLimit+1))
}

func TestBuildQueueEmbedBlankTitleFallback(t *testing.T) {
	embed := BuildQueueEmbed(nil, []music.Track{{Title: "   "}})

	assert.Equal(t, "1). Unknown Title", embed.Description)
}
