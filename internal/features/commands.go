package features

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	musiccmd "github.com/arqon/groovebot/internal/features/music/commands"
	musiclisteners "github.com/arqon/groovebot/internal/features/music/listeners"
	pingcmd "github.com/arqon/groovebot/internal/features/ping/commands"
	playlistcmd "github.com/arqon/groovebot/internal/features/playlist/commands"
	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

var CommandList = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Check that the bot is responsive",
	},
	{
		Name:        "play",
		Description: "Search for a song and play it",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "A song name, artist, or link",
				Required:    true,
			},
		},
	},
	{
		Name:        "skip",
		Description: "Skip the current song",
	},
	{
		Name:        "toggle",
		Description: "Pause or resume playback",
	},
	{
		Name:        "volume",
		Description: "Adjust the playback volume",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "value",
				Description: "Volume between 0 and 100",
				Required:    true,
			},
		},
	},
	{
		Name:        "queue",
		Description: "Show the songs waiting to play",
	},
	{
		Name:        "clear",
		Description: "Remove every song from the queue",
	},
	{
		Name:        "disconnect",
		Description: "Disconnect the bot from the voice channel",
	},
	{
		Name:        "playlist",
		Description: "Manage guild playlists",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Create a new playlist in this guild",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Name for the new playlist",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Add a song to a playlist",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "playlist",
						Description: "Playlist to add the song to",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "song",
						Description: "A song name or link",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List the songs in a playlist",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "playlist",
						Description: "Playlist to list",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "play",
				Description: "Queue every song in a playlist",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "playlist",
						Description: "Playlist to play",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "album",
				Description: "Queue every song from an album",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "album",
						Description: "Album name to search for",
						Required:    true,
					},
				},
			},
		},
	},
}

// Deps holds everything the interaction handlers need. The bot wires one
// instance at startup and passes it to AddHandlers.
type Deps struct {
	Music    *musiccmd.Handlers
	Playlist *playlistcmd.Handlers
	Players  *music.Manager
	Prompts  *music.PromptRegistry
}

func RegisterCommands(s *discordgo.Session, appID string, guildID string) ([]*discordgo.ApplicationCommand, error) {
	scope := "global"
	if guildID != "" {
		scope = fmt.Sprintf("guild:%s", guildID)
	}

	log.Printf("Registering %d commands (%s)", len(CommandList), scope)

	cmds, err := s.ApplicationCommandBulkOverwrite(appID, guildID, CommandList)
	if err != nil {
		return nil, fmt.Errorf("cannot bulk overwrite commands: %w", err)
	}
	return cmds, nil
}

func AddHandlers(s *discordgo.Session, deps *Deps) {
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			dispatchCommand(s, i, deps)
		case discordgo.InteractionMessageComponent:
			musiclisteners.RouteMusicComponent(s, i, deps.Prompts)
		}
	})

	s.AddHandler(func(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
		musiclisteners.HandleVoiceStateUpdate(s, vs, deps.Players)
	})
}

func dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "ping":
		pingcmd.Ping(s, i)
	case "play":
		deps.Music.Play(s, i, data.Options)
	case "skip":
		deps.Music.Skip(s, i)
	case "toggle":
		deps.Music.Toggle(s, i)
	case "volume":
		deps.Music.Volume(s, i, data.Options)
	case "queue":
		deps.Music.Queue(s, i)
	case "clear":
		deps.Music.Clear(s, i)
	case "disconnect":
		deps.Music.Disconnect(s, i)
	case "playlist":
		dispatchPlaylistCommand(s, i, deps, data)
	}
}

func dispatchPlaylistCommand(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps, data discordgo.ApplicationCommandInteractionData) {
	sub := getSubcommandOption(data)
	if sub == nil {
		shared.RespondEphemeral(s, i, "Please pick a playlist subcommand.")
		return
	}

	switch sub.Name {
	case "create":
		deps.Playlist.Create(s, i, sub.Options)
	case "add":
		deps.Playlist.Add(s, i, sub.Options)
	case "list":
		deps.Playlist.List(s, i, sub.Options)
	case "play":
		deps.Playlist.Play(s, i, sub.Options)
	case "album":
		deps.Playlist.Album(s, i, sub.Options)
	default:
		shared.RespondEphemeral(s, i, "That playlist subcommand is not supported.")
	}
}

func getSubcommandOption(data discordgo.ApplicationCommandInteractionData) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt
		}
	}
	return nil
}
