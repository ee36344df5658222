package music

import (
	"context"
	"fmt"
	"strconv"

	redislib "github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "player:settings:"

// GuildSettings is the per-guild playback state that survives reconnects.
type GuildSettings struct {
	Volume   int
	Autoplay AutoplayMode
}

// SettingsStore persists guild playback settings in Redis.
type SettingsStore struct {
	client *redislib.Client
}

func NewSettingsStore(client *redislib.Client) *SettingsStore {
	return &SettingsStore{client: client}
}

// Get reads the guild's saved settings on top of the caller's defaults.
// Fields that are missing or fail validation keep the default value.
func (s *SettingsStore) Get(ctx context.Context, guildID string, defaults GuildSettings) (GuildSettings, error) {
	if s.client == nil {
		return defaults, fmt.Errorf("redis client is nil")
	}
	if guildID == "" {
		return defaults, fmt.Errorf("guild id is required")
	}

	data, err := s.client.HGetAll(ctx, settingsKey(guildID)).Result()
	if err != nil {
		return defaults, err
	}
	if len(data) == 0 {
		return defaults, fmt.Errorf("no settings for guild %s", guildID)
	}

	return mergeSettings(defaults, data), nil
}

func mergeSettings(defaults GuildSettings, data map[string]string) GuildSettings {
	settings := defaults

	if v, ok := data["volume"]; ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= MaxVolume {
			settings.Volume = parsed
		}
	}
	if v, ok := data["autoplay"]; ok && v != "" {
		switch AutoplayMode(v) {
		case AutoplayOff, AutoplayPartial, AutoplayFull:
			settings.Autoplay = AutoplayMode(v)
		}
	}

	return settings
}

func (s *SettingsStore) Set(ctx context.Context, guildID string, settings GuildSettings) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if guildID == "" {
		return fmt.Errorf("guild id is required")
	}

	values := map[string]interface{}{
		"volume":   strconv.Itoa(settings.Volume),
		"autoplay": string(settings.Autoplay),
	}

	return s.client.HSet(ctx, settingsKey(guildID), values).Err()
}

func settingsKey(guildID string) string {
	return settingsKeyPrefix + guildID
}
