package music

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Manager owns the process-wide registry of guild player sessions. Lookups
// and first-use creation are atomic per guild key, so two concurrent first
// commands from one guild cannot double-connect. The registry mutex only
// guards the maps; voice connects run outside it so one guild's connect
// never stalls another guild's commands.
type Manager struct {
	node     Node
	notifier Notifier
	settings *SettingsStore

	defaultVolume int

	mu         sync.Mutex
	sessions   map[string]*Session
	connecting map[string]chan struct{}
}

func NewManager(node Node, notifier Notifier, settings *SettingsStore, defaultUserVolume int) *Manager {
	return &Manager{
		node:          node,
		notifier:      notifier,
		settings:      settings,
		defaultVolume: ScaleVolume(defaultUserVolume),
		sessions:      make(map[string]*Session),
		connecting:    make(map[string]chan struct{}),
	}
}

// Get returns the guild's session, if one is bound.
func (m *Manager) Get(guildID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[guildID]
	return s, ok
}

// Ensure returns the guild's session, creating it on first use. A new
// session binds the requester's voice channel and fixes requestChannelID as
// the home channel; an existing session rejects requests from any other
// channel without mutating state.
func (m *Manager) Ensure(ctx context.Context, guildID, requestChannelID, voiceChannelID string) (*Session, error) {
	for {
		m.mu.Lock()

		if s, ok := m.sessions[guildID]; ok {
			home := s.homeChannelID
			m.mu.Unlock()
			if home != requestChannelID {
				return nil, &ChannelMismatchError{HomeChannelID: home}
			}
			return s, nil
		}

		inFlight, ok := m.connecting[guildID]
		if !ok {
			break
		}

		// Another command for this guild is mid-connect; wait it out and
		// re-check the registry.
		m.mu.Unlock()
		select {
		case <-inFlight:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if voiceChannelID == "" {
		m.mu.Unlock()
		return nil, ErrNoVoiceChannel
	}

	done := make(chan struct{})
	m.connecting[guildID] = done
	m.mu.Unlock()

	if err := m.node.Connect(ctx, guildID, voiceChannelID); err != nil {
		m.mu.Lock()
		delete(m.connecting, guildID)
		m.mu.Unlock()
		close(done)
		return nil, fmt.Errorf("%w: %v", ErrVoiceConnectFailed, err)
	}

	s := &Session{
		guildID:       guildID,
		homeChannelID: requestChannelID,
		node:          m.node,
		notifier:      m.notifier,
		volume:        m.defaultVolume,
		autoplay:      AutoplayPartial,
	}

	if m.settings != nil {
		defaults := GuildSettings{Volume: m.defaultVolume, Autoplay: AutoplayPartial}
		if saved, err := m.settings.Get(ctx, guildID, defaults); err != nil {
			log.Printf("guild %s: settings load failed, using defaults: %v", guildID, err)
		} else {
			s.volume = saved.Volume
			s.autoplay = saved.Autoplay
		}
	}

	m.mu.Lock()
	delete(m.connecting, guildID)
	m.sessions[guildID] = s
	m.mu.Unlock()
	close(done)

	return s, nil
}

// Disconnect tears the voice connection down and discards the session,
// including its queue.
func (m *Manager) Disconnect(ctx context.Context, guildID string) error {
	m.mu.Lock()
	s, ok := m.sessions[guildID]
	delete(m.sessions, guildID)
	m.mu.Unlock()

	if !ok {
		return nil
	}

	if m.settings != nil {
		if err := m.settings.Set(ctx, guildID, GuildSettings{Volume: s.Volume(), Autoplay: s.Autoplay()}); err != nil {
			log.Printf("guild %s: settings save failed: %v", guildID, err)
		}
	}

	return m.node.Disconnect(ctx, guildID)
}

// Drop removes a session whose voice connection was closed externally.
func (m *Manager) Drop(guildID string) {
	m.mu.Lock()
	delete(m.sessions, guildID)
	m.mu.Unlock()
}

// ActiveSessions reports how many guilds currently hold a bound session.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// HandleTrackStart routes a node track-started event to its guild session.
func (m *Manager) HandleTrackStart(guildID string, track Track, recommended bool) {
	if s, ok := m.Get(guildID); ok {
		s.OnTrackStart(track, recommended)
	}
}

// HandleTrackEnd routes a node track-end event to its guild session.
func (m *Manager) HandleTrackEnd(guildID string) {
	if s, ok := m.Get(guildID); ok {
		s.OnTrackEnd(context.Background())
	}
}
