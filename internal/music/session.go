package music

import (
	"context"
	"fmt"
	"log"
	"sync"
)

const (
	// MaxVolume is the ceiling of the node-facing volume scale. User-facing
	// values run 0-100 and are scaled down onto [0, MaxVolume].
	MaxVolume     = 50
	maxUserVolume = 100

	// QueueViewLimit caps how many entries a queue listing renders.
	QueueViewLimit = 15
)

type AutoplayMode string

const (
	AutoplayOff     AutoplayMode = "off"
	AutoplayPartial AutoplayMode = "partial"
	AutoplayFull    AutoplayMode = "full"
)

// ChannelMismatchError rejects a play-type command issued outside the
// session's home channel. It matches ErrChannelMismatch under errors.Is.
type ChannelMismatchError struct {
	HomeChannelID string
}

func (e *ChannelMismatchError) Error() string {
	return fmt.Sprintf("session is bound to channel %s", e.HomeChannelID)
}

func (e *ChannelMismatchError) Is(target error) bool {
	return target == ErrChannelMismatch
}

// Session is the per-guild playback state machine. All mutations run under
// the session mutex so concurrent commands against one guild serialize.
type Session struct {
	guildID       string
	homeChannelID string

	node     Node
	notifier Notifier

	mu         sync.Mutex
	queue      []Track
	nowPlaying *Track
	paused     bool
	volume     int
	autoplay   AutoplayMode
}

func (s *Session) GuildID() string {
	return s.guildID
}

func (s *Session) HomeChannelID() string {
	return s.homeChannelID
}

// Enqueue appends tracks in order and returns how many were admitted. When
// nothing is playing, the head is dequeued and played immediately at the
// session's volume.
func (s *Session) Enqueue(ctx context.Context, tracks ...Track) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, tracks...)
	admitted := len(tracks)

	if s.nowPlaying != nil || len(s.queue) == 0 {
		return admitted, nil
	}

	head := s.queue[0]
	s.queue = s.queue[1:]
	if err := s.node.Play(ctx, s.guildID, head, s.volume); err != nil {
		// Put the head back so a retry does not lose it.
		s.queue = append([]Track{head}, s.queue...)
		return 0, fmt.Errorf("play command failed: %w", err)
	}
	s.nowPlaying = &head

	return admitted, nil
}

// OnTrackStart consumes the node's track-started event: it records the new
// track and posts the now-playing notice to the home channel.
func (s *Session) OnTrackStart(track Track, recommended bool) {
	s.mu.Lock()
	s.nowPlaying = &track
	s.paused = false
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.NowPlaying(s.guildID, s.homeChannelID, NowPlayingNotice{
			Track:       track,
			Recommended: recommended,
		})
	}
}

// OnTrackEnd advances the queue: the head plays next, or the session goes
// idle when the queue is empty.
func (s *Session) OnTrackEnd(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nowPlaying = nil

	if len(s.queue) == 0 {
		return
	}

	head := s.queue[0]
	s.queue = s.queue[1:]
	if err := s.node.Play(ctx, s.guildID, head, s.volume); err != nil {
		log.Printf("guild %s: queue advance failed: %v", s.guildID, err)
		s.queue = append([]Track{head}, s.queue...)
		return
	}
	s.nowPlaying = &head
}

// Toggle flips pause state and reports the new state.
func (s *Session) Toggle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.paused
	if err := s.node.Pause(ctx, s.guildID, next); err != nil {
		return s.paused, fmt.Errorf("pause command failed: %w", err)
	}
	s.paused = next
	return next, nil
}

// Skip forces the node to end the current track. The queue advances through
// the normal track-end path.
func (s *Session) Skip(ctx context.Context) error {
	if err := s.node.Stop(ctx, s.guildID); err != nil {
		return fmt.Errorf("skip command failed: %w", err)
	}
	return nil
}

// SetVolume clamps a user-facing 0-100 value, scales it onto the node's
// 0-50 range, and pushes it. It returns the clamped user value.
func (s *Session) SetVolume(ctx context.Context, userValue int) (int, error) {
	if userValue < 0 {
		userValue = 0
	}
	if userValue > maxUserVolume {
		userValue = maxUserVolume
	}

	scaled := ScaleVolume(userValue)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.node.SetVolume(ctx, s.guildID, scaled); err != nil {
		return userValue, fmt.Errorf("volume command failed: %w", err)
	}
	s.volume = scaled
	return userValue, nil
}

// Volume reports the internal node-facing volume.
func (s *Session) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *Session) Autoplay() AutoplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoplay
}

func (s *Session) SetAutoplay(mode AutoplayMode) {
	s.mu.Lock()
	s.autoplay = mode
	s.mu.Unlock()
}

// Clear empties the queue without touching the current track.
func (s *Session) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := len(s.queue)
	s.queue = nil
	return dropped
}

// Entries snapshots the queue for rendering.
func (s *Session) Entries() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Track, len(s.queue))
	copy(entries, s.queue)
	return entries
}

func (s *Session) NowPlaying() *Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nowPlaying == nil {
		return nil
	}
	track := *s.nowPlaying
	return &track
}

// ScaleVolume maps a clamped user-facing value onto the node's range.
func ScaleVolume(userValue int) int {
	return (userValue*MaxVolume + maxUserVolume/2) / maxUserVolume
}
