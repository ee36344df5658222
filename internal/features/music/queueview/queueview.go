package queueview

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

// BuildQueueEmbed renders the queue with 1-based numbering, capped at the
// session view limit.
func BuildQueueEmbed(nowPlaying *music.Track, entries []music.Track) *discordgo.MessageEmbed {
	limit := len(entries)
	if limit > music.QueueViewLimit {
		limit = music.QueueViewLimit
	}

	lines := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		title := strings.TrimSpace(entries[i].Title)
		if title == "" {
			title = "Unknown Title"
		}
		if entries[i].Artist != "" {
			lines = append(lines, fmt.Sprintf("%d). %s - %s", i+1, title, entries[i].Artist))
		} else {
			lines = append(lines, fmt.Sprintf("%d). %s", i+1, title))
		}
	}

	description := "There is nothing in the queue."
	if len(lines) > 0 {
		description = strings.Join(lines, "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Queue",
		Description: description,
		Color:       shared.AccentColor,
	}

	if nowPlaying != nil {
		value := nowPlaying.Title
		if nowPlaying.Artist != "" {
			value = fmt.Sprintf("%s - %s", nowPlaying.Title, nowPlaying.Artist)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Now Playing",
			Value: value,
		})
	}

	if len(entries) > limit {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("and %d more", len(entries)-limit),
		}
	}

	return embed
}
