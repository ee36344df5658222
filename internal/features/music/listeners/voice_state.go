package listeners

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/music"
)

// HandleVoiceStateUpdate reacts to two situations: the bot being removed
// from voice externally, which discards the guild's session outright, and
// the bot's channel emptying out, which tears the session down cleanly.
func HandleVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate, players *music.Manager) {
	if s == nil || vs == nil || vs.GuildID == "" {
		return
	}

	botID := ""
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}
	if botID == "" {
		return
	}

	if vs.UserID == botID && vs.ChannelID == "" {
		if _, ok := players.Get(vs.GuildID); ok {
			players.Drop(vs.GuildID)
			log.Printf("guild %s: voice connection closed externally, session discarded", vs.GuildID)
		}
		return
	}

	guild := getGuildWithVoiceStates(s, vs.GuildID)
	if guild == nil {
		return
	}

	botChannelID := ""
	for _, state := range guild.VoiceStates {
		if state.UserID == botID && state.ChannelID != "" {
			botChannelID = state.ChannelID
			break
		}
	}
	if botChannelID == "" {
		return
	}

	for _, state := range guild.VoiceStates {
		if state.ChannelID != botChannelID || state.UserID == botID {
			continue
		}
		// Someone is still listening.
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := players.Disconnect(ctx, vs.GuildID); err != nil {
		log.Printf("guild %s: auto-disconnect failed: %v", vs.GuildID, err)
	}
}

func getGuildWithVoiceStates(s *discordgo.Session, guildID string) *discordgo.Guild {
	if s.State != nil {
		if g, err := s.State.Guild(guildID); err == nil {
			return g
		}
	}
	g, err := s.Guild(guildID)
	if err != nil {
		return nil
	}
	return g
}
