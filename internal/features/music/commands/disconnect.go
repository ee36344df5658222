package commands

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
)

func (h *Handlers) Disconnect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		shared.RespondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	if _, ok := h.Players.Get(i.GuildID); !ok {
		shared.RespondEphemeral(s, i, "No one is currently playing anything.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.Players.Disconnect(ctx, i.GuildID); err != nil {
		log.Printf("disconnect failed: %v", err)
		shared.RespondEphemeral(s, i, "Failed to disconnect.")
		return
	}

	shared.RespondEphemeral(s, i, "Disconnected from the voice channel.")
}
