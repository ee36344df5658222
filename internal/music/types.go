package music

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("no matching tracks found")
	ErrCancelled          = errors.New("selection cancelled")
	ErrAlreadyExists      = errors.New("playlist already exists")
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrNoVoiceChannel     = errors.New("user is not in a voice channel")
	ErrVoiceConnectFailed = errors.New("voice connection attempt rejected")
	ErrChannelMismatch    = errors.New("command issued outside the session's home channel")
)

type SourceKind string

const (
	SourceCatalog SourceKind = "catalog"
	SourcePublic  SourceKind = "public"
)

// SourceHint selects which backend the audio node searches.
type SourceHint string

const (
	// SourceNone loads the identifier as-is, with no search prefix.
	SourceNone SourceHint = "none"
	// SourceDefault lets the node pick its default search provider.
	SourceDefault SourceHint = ""
	// SourceYouTube forces a plain YouTube search.
	SourceYouTube SourceHint = "youtube"
)

type Track struct {
	ID      string
	Title   string
	Artist  string
	URI     string
	Source  SourceKind
	Artwork string
	Album   string
}

type Playlist struct {
	Name   string
	Tracks []Track
}

// SearchResult is what the audio node returns for a query: a full playlist,
// a list of tracks, or nothing.
type SearchResult struct {
	Playlist *Playlist
	Tracks   []Track
}

func (r SearchResult) Empty() bool {
	return r.Playlist == nil && len(r.Tracks) == 0
}

// Node is the orchestrator's view of the external audio-rendering node.
type Node interface {
	Search(ctx context.Context, query string, hint SourceHint) (SearchResult, error)
	Connect(ctx context.Context, guildID, channelID string) error
	Play(ctx context.Context, guildID string, track Track, volume int) error
	Pause(ctx context.Context, guildID string, paused bool) error
	SetVolume(ctx context.Context, guildID string, volume int) error
	Stop(ctx context.Context, guildID string) error
	Disconnect(ctx context.Context, guildID string) error
}

type CatalogSong struct {
	Title  string
	Artist string
	Path   string
}

type CatalogAlbum struct {
	ID   int64
	Name string
}

type CatalogTrack struct {
	ID    int64
	Title string
	URI   string
}

type CatalogPlaylist struct {
	ID      int64
	GuildID string
	OwnerID string
	Name    string
}

// Catalog is the orchestrator's view of the relational store.
type Catalog interface {
	SearchSongs(ctx context.Context, query string) ([]CatalogSong, error)
	SearchSongsWithArtists(ctx context.Context, query string, limit int) ([]CatalogSong, error)
	SearchAlbums(ctx context.Context, query string, limit int) ([]CatalogAlbum, error)
	SongsByAlbum(ctx context.Context, albumID int64) ([]CatalogSong, error)
	SearchTracks(ctx context.Context, query string) ([]CatalogTrack, error)
	FindTrackByURI(ctx context.Context, uri string) (*CatalogTrack, error)
	InsertTrack(ctx context.Context, title, uri string) (int64, error)
	FindPlaylist(ctx context.Context, guildID, name string) (*CatalogPlaylist, error)
	CreatePlaylist(ctx context.Context, guildID, ownerID, name string) error
	AddPlaylistTrack(ctx context.Context, playlistID, trackID int64) error
	ListPlaylistTracks(ctx context.Context, playlistID int64) ([]CatalogTrack, error)
}

// Notifier posts session notices back to a guild's home channel.
type Notifier interface {
	NowPlaying(guildID, channelID string, notice NowPlayingNotice)
}

type NowPlayingNotice struct {
	Track       Track
	Recommended bool
}
