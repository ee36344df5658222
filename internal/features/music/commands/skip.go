package commands

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
)

func (h *Handlers) Skip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		shared.RespondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	sess, ok := h.Players.Get(i.GuildID)
	if !ok {
		shared.RespondEphemeral(s, i, "No one is currently playing anything.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sess.Skip(ctx); err != nil {
		log.Printf("skip failed: %v", err)
		shared.RespondEphemeral(s, i, "Failed to skip the current song.")
		return
	}

	shared.RespondEphemeral(s, i, "Skipped current song.")
}
