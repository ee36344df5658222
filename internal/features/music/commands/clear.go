package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
)

func (h *Handlers) Clear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		shared.RespondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	sess, ok := h.Players.Get(i.GuildID)
	if !ok {
		shared.RespondEphemeral(s, i, "No one is currently playing anything.")
		return
	}

	if sess.HomeChannelID() != i.ChannelID {
		shared.RespondEphemeral(s, i, fmt.Sprintf(
			"You can only play songs in <#%s>, as the player has already started there.", sess.HomeChannelID()))
		return
	}

	sess.Clear()
	shared.RespondEphemeral(s, i, "Queue cleared.")
}
