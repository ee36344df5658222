package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
)

// Ping reports the gateway heartbeat latency.
func Ping(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Milliseconds()
	shared.RespondEphemeral(s, i, fmt.Sprintf("Pong! Gateway latency: `%dms`.", latency))
}
