package commands

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
)

func (h *Handlers) Toggle(s *discordgo.Session, i *discordgo.InteractionCreate) {
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

	paused, err := sess.Toggle(ctx)
	if err != nil {
		log.Printf("toggle failed: %v", err)
		shared.RespondEphemeral(s, i, "Failed to toggle playback.")
		return
	}

	if paused {
		shared.RespondEphemeral(s, i, "Paused current song.")
	} else {
		shared.RespondEphemeral(s, i, "Resumed current song.")
	}
}
