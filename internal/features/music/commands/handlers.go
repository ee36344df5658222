package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/picker"
	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

// Handlers carries the playback components the music commands drive. The
// session registry is passed in explicitly; there is no package-level state.
type Handlers struct {
	Players  *music.Manager
	Resolver *music.Resolver
	Picker   *picker.Picker
}

func (h *Handlers) ensureSession(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (*music.Session, bool) {
	userID := shared.GetInteractionUserID(i)
	voiceChannelID := shared.FindUserVoiceChannel(s, i.GuildID, userID)

	sess, err := h.Players.Ensure(ctx, i.GuildID, i.ChannelID, voiceChannelID)
	if err != nil {
		var mismatch *music.ChannelMismatchError
		switch {
		case errors.Is(err, music.ErrNoVoiceChannel):
			shared.FollowupEphemeral(s, i, "Please join a voice channel first before using this command.")
		case errors.As(err, &mismatch):
			shared.FollowupEphemeral(s, i, fmt.Sprintf(
				"You can only play songs in <#%s>, as the player has already started there.", mismatch.HomeChannelID))
		default:
			shared.FollowupEphemeral(s, i, "I was unable to join this voice channel. Please try again.")
		}
		return nil, false
	}
	return sess, true
}
