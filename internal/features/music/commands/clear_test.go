package commands

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqon/groovebot/internal/music"
)

type stubNode struct{}

func (stubNode) Search(context.Context, string, music.SourceHint) (music.SearchResult, error) {
	return music.SearchResult{}, nil
}
func (stubNode) Connect(context.Context, string, string) error        { return nil }
func (stubNode) Play(context.Context, string, music.Track, int) error { return nil }
func (stubNode) Pause(context.Context, string, bool) error            { return nil }
func (stubNode) SetVolume(context.Context, string, int) error         { return nil }
func (stubNode) Stop(context.Context, string) error                   { return nil }
func (stubNode) Disconnect(context.Context, string) error             { return nil }

func guildInteraction(guildID, channelID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			GuildID:   guildID,
			ChannelID: channelID,
		},
	}
}

func TestClearOnlyFromHomeChannel(t *testing.T) {
	players := music.NewManager(stubNode{}, nil, nil, 60)
	sess, err := players.Ensure(context.Background(), "guild-1", "home", "voice-1")
	require.NoError(t, err)

	_, err = sess.Enqueue(context.Background(), music.Track{Title: "First"}, music.Track{Title: "Second"})
	require.NoError(t, err)
	require.Len(t, sess.Entries(), 1)

	h := &Handlers{Players: players}

	h.Clear(nil, guildInteraction("guild-1", "elsewhere"))
	assert.Len(t, sess.Entries(), 1, "a foreign channel must not clear the queue")

	h.Clear(nil, guildInteraction("guild-1", "home"))
	assert.Empty(t, sess.Entries())
}
