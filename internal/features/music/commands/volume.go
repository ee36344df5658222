package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
)

func (h *Handlers) Volume(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if i.GuildID == "" {
		shared.RespondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	sess, ok := h.Players.Get(i.GuildID)
	if !ok {
		shared.RespondEphemeral(s, i, "No one is currently playing anything.")
		return
	}

	value := shared.GetOptionInt(options, "value")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	applied, err := sess.SetVolume(ctx, value)
	if err != nil {
		log.Printf("volume failed: %v", err)
		shared.RespondEphemeral(s, i, "Failed to adjust the volume.")
		return
	}

	shared.RespondEphemeral(s, i, fmt.Sprintf("Adjusted the volume to: `%d`.", applied))
}
