package commands

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/music/queueview"
	"github.com/arqon/groovebot/internal/features/shared"
)

func (h *Handlers) Queue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		shared.RespondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	sess, ok := h.Players.Get(i.GuildID)
	if !ok {
		shared.RespondEphemeral(s, i, "No one is currently playing anything.")
		return
	}

	embed := queueview.BuildQueueEmbed(sess.NowPlaying(), sess.Entries())

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Printf("queue respond failed: %v", err)
	}
}
