package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

const playTimeout = 300 * time.Second

func (h *Handlers) Play(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if i.GuildID == "" {
		shared.RespondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	query := strings.TrimSpace(shared.GetOptionString(options, "query"))
	if query == "" {
		shared.RespondEphemeral(s, i, "A search query is required.")
		return
	}

	if err := shared.DeferEphemeral(s, i); err != nil {
		log.Printf("play defer failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
	defer cancel()

	sess, ok := h.ensureSession(ctx, s, i)
	if !ok {
		return
	}

	selection, err := h.Resolver.Resolve(ctx, query, h.Picker.For(s, i))
	if err != nil {
		switch {
		case errors.Is(err, music.ErrCancelled):
			// The choice prompt already acknowledged the cancellation.
		case errors.Is(err, music.ErrNotFound):
			shared.FollowupEphemeral(s, i, "No tracks can be found with that query.")
		default:
			log.Printf("play resolution failed: %v", err)
			shared.FollowupEphemeral(s, i, "Something went wrong while searching. Please try again.")
		}
		return
	}

	if selection.Playlist != nil {
		added, err := sess.Enqueue(ctx, selection.Playlist.Tracks...)
		if err != nil {
			log.Printf("play enqueue failed: %v", err)
			shared.FollowupEphemeral(s, i, "Failed to queue the playlist. Please try again.")
			return
		}
		shared.FollowupEphemeral(s, i, fmt.Sprintf(
			"Added the playlist **`%s`** (%d songs) to the queue.", selection.Playlist.Name, added))
		return
	}

	if _, err := sess.Enqueue(ctx, *selection.Track); err != nil {
		log.Printf("play enqueue failed: %v", err)
		shared.FollowupEphemeral(s, i, "Failed to queue the track. Please try again.")
		return
	}
	shared.FollowupEphemeral(s, i, fmt.Sprintf("Added **`%s`** to the queue.", selection.Track.Title))
}
