package music

import (
	"context"
	"fmt"
	"sync"
)

type playCall struct {
	guildID string
	track   Track
	volume  int
}

// fakeNode scripts audio node responses per query+hint pair.
type fakeNode struct {
	mu sync.Mutex

	results map[string]SearchResult
	errors  map[string]error

	connectErr error
	playErr    error

	connected  []string
	played     []playCall
	paused     []bool
	volumes    []int
	stopped    int
	disconnect int
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		results: make(map[string]SearchResult),
		errors:  make(map[string]error),
	}
}

func nodeKey(query string, hint SourceHint) string {
	return fmt.Sprintf("%s|%s", hint, query)
}

func (n *fakeNode) stub(query string, hint SourceHint, result SearchResult) {
	n.results[nodeKey(query, hint)] = result
}

func (n *fakeNode) stubErr(query string, hint SourceHint, err error) {
	n.errors[nodeKey(query, hint)] = err
}

func (n *fakeNode) Search(_ context.Context, query string, hint SourceHint) (SearchResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	key := nodeKey(query, hint)
	if err, ok := n.errors[key]; ok {
		return SearchResult{}, err
	}
	return n.results[key], nil
}

func (n *fakeNode) Connect(_ context.Context, guildID, channelID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.connectErr != nil {
		return n.connectErr
	}
	n.connected = append(n.connected, guildID+":"+channelID)
	return nil
}

func (n *fakeNode) Play(_ context.Context, guildID string, track Track, volume int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.playErr != nil {
		return n.playErr
	}
	n.played = append(n.played, playCall{guildID: guildID, track: track, volume: volume})
	return nil
}

func (n *fakeNode) Pause(_ context.Context, _ string, paused bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paused = append(n.paused, paused)
	return nil
}

func (n *fakeNode) SetVolume(_ context.Context, _ string, volume int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volumes = append(n.volumes, volume)
	return nil
}

func (n *fakeNode) Stop(_ context.Context, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped++
	return nil
}

func (n *fakeNode) Disconnect(_ context.Context, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.disconnect++
	return nil
}

// fakeCatalog is an in-memory Catalog with scriptable search responses.
type fakeCatalog struct {
	songs           []CatalogSong
	songsWithArtist []CatalogSong
	albums          []CatalogAlbum
	albumSongs      map[int64][]CatalogSong
	tracks          []CatalogTrack
	tracksByURI     map[string]*CatalogTrack

	playlists      map[string]*CatalogPlaylist
	playlistTracks map[int64][]int64

	nextTrackID int64
	inserted    []string

	searchErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		albumSongs:     make(map[int64][]CatalogSong),
		tracksByURI:    make(map[string]*CatalogTrack),
		playlists:      make(map[string]*CatalogPlaylist),
		playlistTracks: make(map[int64][]int64),
		nextTrackID:    100,
	}
}

func playlistKey(guildID, name string) string {
	return guildID + "|" + name
}

func (c *fakeCatalog) SearchSongs(_ context.Context, _ string) ([]CatalogSong, error) {
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	return c.songs, nil
}

func (c *fakeCatalog) SearchSongsWithArtists(_ context.Context, _ string, limit int) ([]CatalogSong, error) {
	songs := c.songsWithArtist
	if len(songs) > limit {
		songs = songs[:limit]
	}
	return songs, nil
}

func (c *fakeCatalog) SearchAlbums(_ context.Context, _ string, limit int) ([]CatalogAlbum, error) {
	albums := c.albums
	if len(albums) > limit {
		albums = albums[:limit]
	}
	return albums, nil
}

func (c *fakeCatalog) SongsByAlbum(_ context.Context, albumID int64) ([]CatalogSong, error) {
	return c.albumSongs[albumID], nil
}

func (c *fakeCatalog) SearchTracks(_ context.Context, _ string) ([]CatalogTrack, error) {
	return c.tracks, nil
}

func (c *fakeCatalog) FindTrackByURI(_ context.Context, uri string) (*CatalogTrack, error) {
	return c.tracksByURI[uri], nil
}

func (c *fakeCatalog) InsertTrack(_ context.Context, title, uri string) (int64, error) {
	id := c.nextTrackID
	c.nextTrackID++
	c.inserted = append(c.inserted, uri)
	c.tracksByURI[uri] = &CatalogTrack{ID: id, Title: title, URI: uri}
	return id, nil
}

func (c *fakeCatalog) FindPlaylist(_ context.Context, guildID, name string) (*CatalogPlaylist, error) {
	return c.playlists[playlistKey(guildID, name)], nil
}

func (c *fakeCatalog) CreatePlaylist(_ context.Context, guildID, ownerID, name string) error {
	id := int64(len(c.playlists) + 1)
	c.playlists[playlistKey(guildID, name)] = &CatalogPlaylist{
		ID:      id,
		GuildID: guildID,
		OwnerID: ownerID,
		Name:    name,
	}
	return nil
}

func (c *fakeCatalog) AddPlaylistTrack(_ context.Context, playlistID, trackID int64) error {
	c.playlistTracks[playlistID] = append(c.playlistTracks[playlistID], trackID)
	return nil
}

func (c *fakeCatalog) ListPlaylistTracks(_ context.Context, playlistID int64) ([]CatalogTrack, error) {
	ids := c.playlistTracks[playlistID]
	tracks := make([]CatalogTrack, 0, len(ids))
	for _, id := range ids {
		for _, t := range c.tracksByURI {
			if t.ID == id {
				tracks = append(tracks, *t)
			}
		}
	}
	return tracks, nil
}

// scriptedChooser answers every prompt with a fixed index or error and
// records what it was shown.
type scriptedChooser struct {
	index int
	err   error

	shown [][]Choice
}

func (c *scriptedChooser) Choose(_ context.Context, choices []Choice) (int, error) {
	c.shown = append(c.shown, choices)
	if c.err != nil {
		return 0, c.err
	}
	return c.index, nil
}

// recordingNotifier captures now-playing notices.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []NowPlayingNotice
}

func (n *recordingNotifier) NowPlaying(_, _ string, notice NowPlayingNotice) {
	n.mu.Lock()
	n.notices = append(n.notices, notice)
	n.mu.Unlock()
}
