package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/picker"
	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

const playlistTimeout = 300 * time.Second

// Handlers implements the playlist command group.
type Handlers struct {
	Playlists *music.PlaylistManager
	Players   *music.Manager
	Picker    *picker.Picker
}

func (h *Handlers) Create(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	name := strings.TrimSpace(shared.GetOptionString(options, "name"))
	if name == "" {
		shared.RespondEphemeral(s, i, "A playlist name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := h.Playlists.Create(ctx, i.GuildID, shared.GetInteractionUserID(i), name)
	if err != nil {
		if errors.Is(err, music.ErrAlreadyExists) {
			shared.RespondEphemeral(s, i, "A playlist with that name already exists in this guild.")
			return
		}
		log.Printf("playlist create failed: %v", err)
		shared.RespondEphemeral(s, i, "Failed to create the playlist.")
		return
	}

	shared.RespondEphemeral(s, i, fmt.Sprintf("Playlist `%s` has been created in this guild.", name))
}

func (h *Handlers) Add(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	playlistName := strings.TrimSpace(shared.GetOptionString(options, "playlist"))
	song := strings.TrimSpace(shared.GetOptionString(options, "song"))
	if playlistName == "" || song == "" {
		shared.RespondEphemeral(s, i, "Both a playlist name and a song query are required.")
		return
	}

	if err := shared.DeferEphemeral(s, i); err != nil {
		log.Printf("playlist add defer failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), playlistTimeout)
	defer cancel()

	track, err := h.Playlists.AddSong(ctx, i.GuildID, playlistName, song, h.Picker.For(s, i))
	if err != nil {
		switch {
		case errors.Is(err, music.ErrCancelled):
			// Aborted by the user; the prompt already acknowledged it.
		case errors.Is(err, music.ErrPlaylistNotFound):
			shared.FollowupEphemeral(s, i, "That playlist does not exist.")
		case errors.Is(err, music.ErrNotFound):
			shared.FollowupEphemeral(s, i, "No tracks can be found with that query.")
		default:
			log.Printf("playlist add failed: %v", err)
			shared.FollowupEphemeral(s, i, "Failed to add the song.")
		}
		return
	}

	shared.FollowupEphemeral(s, i, fmt.Sprintf("**`%s`** has been added to %s.", track.Title, playlistName))
}

func (h *Handlers) List(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	playlistName := strings.TrimSpace(shared.GetOptionString(options, "playlist"))
	if playlistName == "" {
		shared.RespondEphemeral(s, i, "A playlist name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name, tracks, err := h.Playlists.ListSongs(ctx, i.GuildID, playlistName)
	if err != nil {
		if errors.Is(err, music.ErrPlaylistNotFound) {
			shared.RespondEphemeral(s, i, "That playlist does not exist.")
			return
		}
		log.Printf("playlist list failed: %v", err)
		shared.RespondEphemeral(s, i, "Failed to list the playlist.")
		return
	}

	lines := make([]string, 0, len(tracks))
	for idx, track := range tracks {
		lines = append(lines, fmt.Sprintf("%d). %s", idx+1, track.Title))
	}

	description := "This playlist is empty."
	if len(lines) > 0 {
		description = strings.Join(lines, "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       name,
		Description: description,
		Color:       shared.AccentColor,
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Printf("playlist list respond failed: %v", err)
	}
}

func (h *Handlers) Play(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	playlistName := strings.TrimSpace(shared.GetOptionString(options, "playlist"))
	if playlistName == "" {
		shared.RespondEphemeral(s, i, "A playlist name is required.")
		return
	}

	if err := shared.DeferEphemeral(s, i); err != nil {
		log.Printf("playlist play defer failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), playlistTimeout)
	defer cancel()

	sess, ok := h.ensureSession(ctx, s, i)
	if !ok {
		return
	}

	name, tracks, err := h.Playlists.PlayAll(ctx, i.GuildID, playlistName)
	if err != nil {
		if errors.Is(err, music.ErrPlaylistNotFound) {
			shared.FollowupEphemeral(s, i, "That playlist does not exist.")
			return
		}
		log.Printf("playlist play failed: %v", err)
		shared.FollowupEphemeral(s, i, "Failed to play the playlist.")
		return
	}
	if len(tracks) == 0 {
		shared.FollowupEphemeral(s, i, "This playlist has no playable songs.")
		return
	}

	if _, err := sess.Enqueue(ctx, tracks...); err != nil {
		log.Printf("playlist enqueue failed: %v", err)
		shared.FollowupEphemeral(s, i, "Failed to queue the playlist.")
		return
	}

	shared.FollowupEphemeral(s, i, fmt.Sprintf("%s has been added to the queue.", name))
}

func (h *Handlers) Album(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	albumQuery := strings.TrimSpace(shared.GetOptionString(options, "album"))
	if albumQuery == "" {
		shared.RespondEphemeral(s, i, "An album name is required.")
		return
	}

	if err := shared.DeferEphemeral(s, i); err != nil {
		log.Printf("playlist album defer failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), playlistTimeout)
	defer cancel()

	name, tracks, err := h.Playlists.PlayAlbum(ctx, albumQuery, h.Picker.For(s, i))
	if err != nil {
		switch {
		case errors.Is(err, music.ErrCancelled):
			// Aborted by the user; the prompt already acknowledged it.
		case errors.Is(err, music.ErrNotFound):
			shared.FollowupEphemeral(s, i, "No albums match that name.")
		default:
			log.Printf("playlist album failed: %v", err)
			shared.FollowupEphemeral(s, i, "Failed to play the album.")
		}
		return
	}
	if len(tracks) == 0 {
		shared.FollowupEphemeral(s, i, "That album has no playable songs.")
		return
	}

	sess, ok := h.ensureSession(ctx, s, i)
	if !ok {
		return
	}

	if _, err := sess.Enqueue(ctx, tracks...); err != nil {
		log.Printf("album enqueue failed: %v", err)
		shared.FollowupEphemeral(s, i, "Failed to queue the album.")
		return
	}

	shared.FollowupEphemeral(s, i, fmt.Sprintf("%s has been added to the queue.", name))
}

func (h *Handlers) ensureSession(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (*music.Session, bool) {
	userID := shared.GetInteractionUserID(i)
	voiceChannelID := shared.FindUserVoiceChannel(s, i.GuildID, userID)

	sess, err := h.Players.Ensure(ctx, i.GuildID, i.ChannelID, voiceChannelID)
	if err != nil {
		var mismatch *music.ChannelMismatchError
		switch {
		case errors.Is(err, music.ErrNoVoiceChannel):
			shared.FollowupEphemeral(s, i, "Please join a voice channel first before using this command.")
		case errors.As(err, &mismatch):
			shared.FollowupEphemeral(s, i, fmt.Sprintf(
				"You can only play songs in <#%s>, as the player has already started there.", mismatch.HomeChannelID))
		default:
			shared.FollowupEphemeral(s, i, "I was unable to join this voice channel. Please try again.")
		}
		return nil, false
	}
	return sess, true
}
