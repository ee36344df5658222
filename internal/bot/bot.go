package bot

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/config"
	"github.com/arqon/groovebot/internal/audionode"
	"github.com/arqon/groovebot/internal/database"
	"github.com/arqon/groovebot/internal/features"
	musiccmd "github.com/arqon/groovebot/internal/features/music/commands"
	"github.com/arqon/groovebot/internal/features/picker"
	playlistcmd "github.com/arqon/groovebot/internal/features/playlist/commands"
	"github.com/arqon/groovebot/internal/music"
	"github.com/arqon/groovebot/internal/redis"
)

type Bot struct {
	config   *config.Config
	sessions []*discordgo.Session

	notifier *ChannelNotifier
	players  *music.Manager
	events   *audionode.EventSocket
	deps     *features.Deps

	started      bool
	presenceStop chan struct{}
}

func New(cfg *config.Config) (*Bot, error) {
	dbCfg := cfg.GetDBConfig()
	if err := database.Initialize(&database.Config{
		Host:     dbCfg.Host,
		Port:     dbCfg.Port,
		User:     dbCfg.User,
		Password: dbCfg.Password,
		DBName:   dbCfg.Name,
		SSLMode:  dbCfg.SSLMode,
	}); err != nil {
		log.Printf("Warning: Database initialization failed: %v", err)
	}
	catalog := database.NewCatalogRepository()

	redisCfg := cfg.GetRedisConfig()
	var settings *music.SettingsStore
	if client, err := redis.Connect(redis.Config{
		Host:     redisCfg.Host,
		Port:     redisCfg.Port,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}); err != nil {
		log.Printf("Warning: Redis initialization failed, guild settings will not persist: %v", err)
	} else {
		settings = music.NewSettingsStore(client)
	}

	nodeCfg := cfg.GetAudioNodeConfig()
	node := audionode.NewClient(nodeCfg.Host, nodeCfg.Password)

	notifier := NewChannelNotifier()
	players := music.NewManager(node, notifier, settings, cfg.DefaultVolume)
	events := audionode.NewEventSocket(nodeCfg.Host, nodeCfg.Password, players)

	resolver := music.NewResolver(catalog, node)
	playlists := music.NewPlaylistManager(catalog, resolver)
	prompts := music.NewPromptRegistry()
	choicePicker := picker.New(prompts, time.Duration(cfg.ChoiceTimeout)*time.Second)

	deps := &features.Deps{
		Music: &musiccmd.Handlers{
			Players:  players,
			Resolver: resolver,
			Picker:   choicePicker,
		},
		Playlist: &playlistcmd.Handlers{
			Playlists: playlists,
			Players:   players,
			Picker:    choicePicker,
		},
		Players: players,
		Prompts: prompts,
	}

	sessions, err := openSessions(cfg)
	if err != nil {
		return nil, err
	}
	notifier.Bind(sessions)

	return &Bot{
		config:   cfg,
		sessions: sessions,
		notifier: notifier,
		players:  players,
		events:   events,
		deps:     deps,
	}, nil
}

func openSessions(cfg *config.Config) ([]*discordgo.Session, error) {
	shardCount := cfg.ShardCount
	if shardCount < 1 {
		s, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			return nil, err
		}

		if gw, err := s.GatewayBot(); err == nil && gw.Shards > 0 {
			shardCount = gw.Shards
		} else {
			log.Printf("Warning: failed to auto-detect shard count, defaulting to 1: %v", err)
			shardCount = 1
		}
	}

	if shardCount < 1 {
		shardCount = 1
	}

	sessions := make([]*discordgo.Session, 0, shardCount)
	for shard := 0; shard < shardCount; shard++ {
		s, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			return nil, err
		}

		s.Identify.Intents = discordgo.IntentsGuilds |
			discordgo.IntentsGuildVoiceStates

		if shardCount > 1 {
			s.Identify.Shard = &[2]int{shard, shardCount}
			s.ShardCount = shardCount
		}

		sessions = append(sessions, s)
	}

	return sessions, nil
}

func (b *Bot) Start() error {
	if b.started {
		return nil
	}

	if len(b.sessions) == 0 {
		return nil
	}

	for _, s := range b.sessions {
		b.registerHandlers(s)
		features.AddHandlers(s, b.deps)
	}

	if _, err := features.RegisterCommands(b.sessions[0], b.config.ApplicationID, b.config.GuildID); err != nil {
		log.Printf("Warning: failed to register slash commands: %v", err)
	}

	for _, s := range b.sessions {
		if err := s.Open(); err != nil {
			return err
		}
	}

	b.events.Start()
	b.startPresenceUpdater()
	b.started = true
	log.Printf("Bot session opened (%d shard(s))", len(b.sessions))
	return nil
}

func (b *Bot) registerHandlers(s *discordgo.Session) {
	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		if s.State != nil && s.State.User != nil {
			log.Printf("Bot ready as %s#%s", s.State.User.Username, s.State.User.Discriminator)
		} else {
			log.Printf("Bot ready")
		}
		b.updatePresence()
	})
}

func (b *Bot) Stop() error {
	if !b.started {
		return nil
	}

	b.started = false
	b.stopPresenceUpdater()
	b.events.Close()

	for _, s := range b.sessions {
		if err := s.Close(); err != nil {
			return err
		}
	}

	if err := database.Close(); err != nil {
		log.Printf("Warning: failed to close database: %v", err)
	}

	log.Printf("Bot session closed (%d shard(s))", len(b.sessions))
	return nil
}
