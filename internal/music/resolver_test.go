package music

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSingleCatalogMatch(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.songs = []CatalogSong{{Title: "Blue Train", Artist: "John Coltrane", Path: "file:///blue-train.flac"}}
	node := newFakeNode()

	r := NewResolver(catalog, node)
	chooser := &scriptedChooser{}

	selection, err := r.Resolve(context.Background(), "blue train", chooser)
	require.NoError(t, err)
	require.NotNil(t, selection.Track)
	assert.Equal(t, "Blue Train", selection.Track.Title)
	assert.Equal(t, SourceCatalog, selection.Track.Source)
	assert.Equal(t, "file:///blue-train.flac", selection.Track.URI)
	assert.Empty(t, chooser.shown, "a single match must not prompt")
}

func TestResolveAmbiguousCatalogMatchPrompts(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.songs = []CatalogSong{{Title: "Naima"}, {Title: "Naima (Live)"}}
	catalog.songsWithArtist = []CatalogSong{
		{Title: "Naima", Artist: "John Coltrane", Path: "file:///naima.flac"},
		{Title: "Naima (Live)", Artist: "John Coltrane", Path: "file:///naima-live.flac"},
	}
	node := newFakeNode()

	r := NewResolver(catalog, node)
	chooser := &scriptedChooser{index: 1}

	selection, err := r.Resolve(context.Background(), "naima", chooser)
	require.NoError(t, err)
	require.NotNil(t, selection.Track)
	assert.Equal(t, "Naima (Live)", selection.Track.Title)

	require.Len(t, chooser.shown, 1)
	assert.Equal(t, "John Coltrane", chooser.shown[0][0].Artist, "choices carry artist labels")
}

func TestResolveFallsThroughToPublicSearch(t *testing.T) {
	catalog := newFakeCatalog()
	node := newFakeNode()
	node.stub("giant steps", SourceDefault, SearchResult{
		Tracks: []Track{{Title: "Giant Steps", Source: SourcePublic, URI: "https://music.example/gs"}},
	})

	r := NewResolver(catalog, node)

	selection, err := r.Resolve(context.Background(), "giant steps", &scriptedChooser{})
	require.NoError(t, err)
	require.NotNil(t, selection.Track)
	assert.Equal(t, "Giant Steps", selection.Track.Title)
	assert.Equal(t, SourcePublic, selection.Track.Source)
}

func TestResolvePublicPlaylistTakenWhole(t *testing.T) {
	catalog := newFakeCatalog()
	node := newFakeNode()
	node.stub("https://music.example/list", SourceDefault, SearchResult{
		Playlist: &Playlist{
			Name:   "Morning Mix",
			Tracks: []Track{{Title: "One"}, {Title: "Two"}},
		},
	})

	r := NewResolver(catalog, node)
	chooser := &scriptedChooser{}

	selection, err := r.Resolve(context.Background(), "https://music.example/list", chooser)
	require.NoError(t, err)
	require.NotNil(t, selection.Playlist)
	assert.Equal(t, "Morning Mix", selection.Playlist.Name)
	assert.Len(t, selection.Playlist.Tracks, 2)
	assert.Empty(t, chooser.shown, "playlists are never disambiguated")
}

func TestResolveAmbiguousPublicMatchCapsChoices(t *testing.T) {
	catalog := newFakeCatalog()
	node := newFakeNode()

	tracks := make([]Track, 8)
	for i := range tracks {
		tracks[i] = Track{Title: "Result", Source: SourcePublic}
	}
	node.stub("popular", SourceDefault, SearchResult{Tracks: tracks})

	r := NewResolver(catalog, node)
	chooser := &scriptedChooser{index: 2}

	selection, err := r.Resolve(context.Background(), "popular", chooser)
	require.NoError(t, err)
	require.NotNil(t, selection.Track)

	require.Len(t, chooser.shown, 1)
	assert.Len(t, chooser.shown[0], MaxChoices)
}

func TestResolvePlatformTierTakesFirstResult(t *testing.T) {
	catalog := newFakeCatalog()
	node := newFakeNode()
	node.stub("obscure demo", SourceYouTube, SearchResult{
		Tracks: []Track{{Title: "Obscure Demo"}, {Title: "Obscure Demo Reaction"}},
	})

	r := NewResolver(catalog, node)
	chooser := &scriptedChooser{}

	selection, err := r.Resolve(context.Background(), "obscure demo", chooser)
	require.NoError(t, err)
	require.NotNil(t, selection.Track)
	assert.Equal(t, "Obscure Demo", selection.Track.Title)
	assert.Empty(t, chooser.shown, "the last tier never prompts")
}

func TestResolveAllTiersEmpty(t *testing.T) {
	r := NewResolver(newFakeCatalog(), newFakeNode())

	_, err := r.Resolve(context.Background(), "nothing matches this", &scriptedChooser{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCancelledPromptStopsResolution(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.songs = []CatalogSong{{Title: "A"}, {Title: "B"}}
	catalog.songsWithArtist = catalog.songs

	r := NewResolver(catalog, newFakeNode())
	chooser := &scriptedChooser{err: ErrCancelled}

	_, err := r.Resolve(context.Background(), "a", chooser)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestResolveURIStopsAtFirstHit(t *testing.T) {
	node := newFakeNode()
	node.stub("file:///naima.flac", SourceNone, SearchResult{
		Tracks: []Track{{Title: "Naima", URI: "file:///naima.flac"}},
	})

	r := NewResolver(newFakeCatalog(), node)

	track, err := r.ResolveURI(context.Background(), "file:///naima.flac")
	require.NoError(t, err)
	assert.Equal(t, "Naima", track.Title)
}

func TestResolveURIFallsBackThroughHints(t *testing.T) {
	node := newFakeNode()
	node.stub("naima coltrane", SourceYouTube, SearchResult{
		Tracks: []Track{{Title: "Naima"}},
	})

	r := NewResolver(newFakeCatalog(), node)

	track, err := r.ResolveURI(context.Background(), "naima coltrane")
	require.NoError(t, err)
	assert.Equal(t, "Naima", track.Title)
}

func TestResolveURIExhausted(t *testing.T) {
	r := NewResolver(newFakeCatalog(), newFakeNode())

	_, err := r.ResolveURI(context.Background(), "file:///gone.flac")
	assert.ErrorIs(t, err, ErrNotFound)
}
