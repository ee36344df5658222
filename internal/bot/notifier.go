package bot

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

// ChannelNotifier posts now-playing announcements to a session's home text
// channel. It is created before the gateway sessions exist and bound once
// they do.
type ChannelNotifier struct {
	mu       sync.RWMutex
	sessions []*discordgo.Session
}

func NewChannelNotifier() *ChannelNotifier {
	return &ChannelNotifier{}
}

func (n *ChannelNotifier) Bind(sessions []*discordgo.Session) {
	n.mu.Lock()
	n.sessions = sessions
	n.mu.Unlock()
}

func (n *ChannelNotifier) NowPlaying(guildID, channelID string, notice music.NowPlayingNotice) {
	s := n.sessionFor(guildID)
	if s == nil || channelID == "" {
		return
	}

	description := fmt.Sprintf("**%s** by `%s`", notice.Track.Title, notice.Track.Artist)
	if notice.Recommended {
		description += "\n\nThis track was picked for you based on the recent queue."
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Now Playing",
		Description: description,
		Color:       shared.AccentColor,
	}
	if notice.Track.Album != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Album", Value: notice.Track.Album},
		}
	}
	if notice.Track.Artwork != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: notice.Track.Artwork}
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("guild %s: failed to announce track: %v", guildID, err)
	}
}

// sessionFor picks the shard that owns the guild. Discord assigns guilds to
// shards by (guild_id >> 22) % shard_count.
func (n *ChannelNotifier) sessionFor(guildID string) *discordgo.Session {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(n.sessions) == 0 {
		return nil
	}
	if len(n.sessions) == 1 {
		return n.sessions[0]
	}

	id, err := strconv.ParseUint(guildID, 10, 64)
	if err != nil {
		return n.sessions[0]
	}
	return n.sessions[(id>>22)%uint64(len(n.sessions))]
}
