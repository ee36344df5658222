package music

import (
	"context"
	"fmt"
)

// Selection is the result of resolving a query: exactly one of Track or
// Playlist is set.
type Selection struct {
	Track    *Track
	Playlist *Playlist
}

type strategyOutcome int

const (
	outcomeResolved strategyOutcome = iota
	outcomeEmpty
)

// strategy is one resolution tier. Tiers run in order; an empty outcome
// falls through to the next tier, anything else ends resolution.
type strategy func(ctx context.Context, query string, chooser Chooser) (Selection, strategyOutcome, error)

type Resolver struct {
	catalog Catalog
	node    Node
}

func NewResolver(catalog Catalog, node Node) *Resolver {
	return &Resolver{
		catalog: catalog,
		node:    node,
	}
}

// Resolve turns a free-text query into a single track or a playlist. It
// returns ErrCancelled when the user abandons a disambiguation prompt and
// ErrNotFound when every tier comes up empty.
func (r *Resolver) Resolve(ctx context.Context, query string, chooser Chooser) (Selection, error) {
	strategies := []strategy{
		r.searchCatalog,
		r.searchPublic,
		r.searchPlatform,
	}

	for _, tier := range strategies {
		selection, outcome, err := tier(ctx, query, chooser)
		if err != nil {
			return Selection{}, err
		}
		if outcome == outcomeResolved {
			return selection, nil
		}
	}

	return Selection{}, ErrNotFound
}

func (r *Resolver) searchCatalog(ctx context.Context, query string, chooser Chooser) (Selection, strategyOutcome, error) {
	songs, err := r.catalog.SearchSongs(ctx, query)
	if err != nil {
		return Selection{}, outcomeEmpty, fmt.Errorf("catalog lookup failed: %w", err)
	}

	switch {
	case len(songs) == 0:
		return Selection{}, outcomeEmpty, nil
	case len(songs) == 1:
		track := catalogTrack(songs[0])
		return Selection{Track: &track}, outcomeResolved, nil
	}

	// Re-query with artist metadata so the prompt can label each candidate.
	songs, err = r.catalog.SearchSongsWithArtists(ctx, query, MaxChoices)
	if err != nil {
		return Selection{}, outcomeEmpty, fmt.Errorf("catalog lookup failed: %w", err)
	}

	choices := make([]Choice, 0, len(songs))
	for _, song := range songs {
		choices = append(choices, Choice{Title: song.Title, Artist: song.Artist})
	}

	index, err := chooser.Choose(ctx, choices)
	if err != nil {
		return Selection{}, outcomeEmpty, err
	}

	track := catalogTrack(songs[index])
	return Selection{Track: &track}, outcomeResolved, nil
}

func (r *Resolver) searchPublic(ctx context.Context, query string, chooser Chooser) (Selection, strategyOutcome, error) {
	result, err := r.node.Search(ctx, query, SourceDefault)
	if err != nil {
		return Selection{}, outcomeEmpty, fmt.Errorf("public search failed: %w", err)
	}

	// Playlists are taken whole, never disambiguated item-by-item.
	if result.Playlist != nil {
		return Selection{Playlist: result.Playlist}, outcomeResolved, nil
	}

	switch {
	case len(result.Tracks) == 0:
		return Selection{}, outcomeEmpty, nil
	case len(result.Tracks) == 1:
		return Selection{Track: &result.Tracks[0]}, outcomeResolved, nil
	}

	choices := normalizeChoices(result.Tracks, MaxChoices)
	index, err := chooser.Choose(ctx, choices)
	if err != nil {
		return Selection{}, outcomeEmpty, err
	}

	return Selection{Track: &result.Tracks[index]}, outcomeResolved, nil
}

func (r *Resolver) searchPlatform(ctx context.Context, query string, _ Chooser) (Selection, strategyOutcome, error) {
	result, err := r.node.Search(ctx, query, SourceYouTube)
	if err != nil {
		return Selection{}, outcomeEmpty, fmt.Errorf("platform search failed: %w", err)
	}

	if len(result.Tracks) == 0 {
		return Selection{}, outcomeEmpty, nil
	}

	// Last tier takes the first result unconditionally.
	return Selection{Track: &result.Tracks[0]}, outcomeResolved, nil
}

// ResolveURI resolves a stored locator through the node's search tiers:
// exact load, default provider, then an explicit YouTube search.
func (r *Resolver) ResolveURI(ctx context.Context, uri string) (Track, error) {
	for _, hint := range []SourceHint{SourceNone, SourceDefault, SourceYouTube} {
		result, err := r.node.Search(ctx, uri, hint)
		if err != nil {
			return Track{}, fmt.Errorf("locator search failed: %w", err)
		}
		if result.Playlist != nil && len(result.Playlist.Tracks) > 0 {
			return result.Playlist.Tracks[0], nil
		}
		if len(result.Tracks) > 0 {
			return result.Tracks[0], nil
		}
	}

	return Track{}, ErrNotFound
}

func catalogTrack(song CatalogSong) Track {
	return Track{
		Title:  song.Title,
		Artist: song.Artist,
		URI:    song.Path,
		Source: SourceCatalog,
	}
}

func normalizeChoices(tracks []Track, limit int) []Choice {
	if len(tracks) < limit {
		limit = len(tracks)
	}

	choices := make([]Choice, 0, limit)
	for i := 0; i < limit; i++ {
		choices = append(choices, Choice{
			Title:  tracks[i].Title,
			Artist: tracks[i].Artist,
		})
	}
	return choices
}
