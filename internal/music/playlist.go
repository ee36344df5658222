package music

import (
	"context"
	"fmt"
	"log"
)

// PlaylistManager is CRUD over named playlists scoped to a guild, backed by
// the catalog store and reusing the resolver for song lookup.
type PlaylistManager struct {
	catalog  Catalog
	resolver *Resolver
}

func NewPlaylistManager(catalog Catalog, resolver *Resolver) *PlaylistManager {
	return &PlaylistManager{
		catalog:  catalog,
		resolver: resolver,
	}
}

// Create inserts a new empty playlist. Names are unique per guild under
// case-insensitive compare; duplicates fail with ErrAlreadyExists.
func (pm *PlaylistManager) Create(ctx context.Context, guildID, ownerID, name string) error {
	existing, err := pm.catalog.FindPlaylist(ctx, guildID, name)
	if err != nil {
		return fmt.Errorf("playlist lookup failed: %w", err)
	}
	if existing != nil {
		return ErrAlreadyExists
	}

	if err := pm.catalog.CreatePlaylist(ctx, guildID, ownerID, name); err != nil {
		return fmt.Errorf("playlist insert failed: %w", err)
	}
	return nil
}

// AddSong appends a track to the playlist. The song query is matched against
// stored tracks first; ambiguity opens a prompt, and a miss falls back to the
// resolver's full tiers, persisting public-search results into the catalog.
func (pm *PlaylistManager) AddSong(ctx context.Context, guildID, playlistName, songQuery string, chooser Chooser) (Track, error) {
	playlist, err := pm.catalog.FindPlaylist(ctx, guildID, playlistName)
	if err != nil {
		return Track{}, fmt.Errorf("playlist lookup failed: %w", err)
	}
	if playlist == nil {
		return Track{}, ErrPlaylistNotFound
	}

	stored, err := pm.catalog.SearchTracks(ctx, songQuery)
	if err != nil {
		return Track{}, fmt.Errorf("track lookup failed: %w", err)
	}

	if len(stored) >= 1 {
		chosen := stored[0]
		if len(stored) > 1 {
			if len(stored) > MaxChoices {
				stored = stored[:MaxChoices]
			}
			choices := make([]Choice, 0, len(stored))
			for _, t := range stored {
				choices = append(choices, Choice{Title: t.Title})
			}
			index, err := chooser.Choose(ctx, choices)
			if err != nil {
				return Track{}, err
			}
			chosen = stored[index]
		}

		if err := pm.catalog.AddPlaylistTrack(ctx, playlist.ID, chosen.ID); err != nil {
			return Track{}, fmt.Errorf("playlist append failed: %w", err)
		}
		return Track{ID: fmt.Sprint(chosen.ID), Title: chosen.Title, URI: chosen.URI, Source: SourceCatalog}, nil
	}

	selection, err := pm.resolver.Resolve(ctx, songQuery, chooser)
	if err != nil {
		return Track{}, err
	}
	if selection.Track == nil {
		return Track{}, ErrNotFound
	}
	track := *selection.Track

	trackID, err := pm.persistTrack(ctx, track)
	if err != nil {
		return Track{}, err
	}

	if err := pm.catalog.AddPlaylistTrack(ctx, playlist.ID, trackID); err != nil {
		return Track{}, fmt.Errorf("playlist append failed: %w", err)
	}
	return track, nil
}

// persistTrack makes sure the resolved track has a catalog row to reference.
// Public-search results are always inserted; catalog-sourced tracks reuse the
// ingested row when one exists.
func (pm *PlaylistManager) persistTrack(ctx context.Context, track Track) (int64, error) {
	if track.Source != SourcePublic {
		existing, err := pm.catalog.FindTrackByURI(ctx, track.URI)
		if err != nil {
			return 0, fmt.Errorf("track lookup failed: %w", err)
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	id, err := pm.catalog.InsertTrack(ctx, track.Title, track.URI)
	if err != nil {
		return 0, fmt.Errorf("track insert failed: %w", err)
	}
	return id, nil
}

// ListSongs returns the playlist's tracks in stored order. An existing but
// empty playlist returns an empty slice, distinct from ErrPlaylistNotFound.
func (pm *PlaylistManager) ListSongs(ctx context.Context, guildID, name string) (string, []CatalogTrack, error) {
	playlist, err := pm.catalog.FindPlaylist(ctx, guildID, name)
	if err != nil {
		return "", nil, fmt.Errorf("playlist lookup failed: %w", err)
	}
	if playlist == nil {
		return "", nil, ErrPlaylistNotFound
	}

	tracks, err := pm.catalog.ListPlaylistTracks(ctx, playlist.ID)
	if err != nil {
		return "", nil, fmt.Errorf("playlist tracks lookup failed: %w", err)
	}
	return playlist.Name, tracks, nil
}

// PlayAll resolves every stored locator through the node's search tiers and
// returns the playable tracks in stored order. Locators that no tier can
// resolve are skipped with a logged warning.
func (pm *PlaylistManager) PlayAll(ctx context.Context, guildID, name string) (string, []Track, error) {
	playlistName, stored, err := pm.ListSongs(ctx, guildID, name)
	if err != nil {
		return "", nil, err
	}

	tracks := make([]Track, 0, len(stored))
	for _, entry := range stored {
		track, err := pm.resolver.ResolveURI(ctx, entry.URI)
		if err != nil {
			log.Printf("playlist %q: skipping unresolvable locator %q: %v", playlistName, entry.URI, err)
			continue
		}
		tracks = append(tracks, track)
	}
	return playlistName, tracks, nil
}

// PlayAlbum finds an album by substring, disambiguating when several match,
// and returns its songs resolved in catalog order. Zero matches yield
// ErrNotFound so the caller can no-op.
func (pm *PlaylistManager) PlayAlbum(ctx context.Context, albumQuery string, chooser Chooser) (string, []Track, error) {
	albums, err := pm.catalog.SearchAlbums(ctx, albumQuery, MaxChoices)
	if err != nil {
		return "", nil, fmt.Errorf("album lookup failed: %w", err)
	}
	if len(albums) == 0 {
		return "", nil, ErrNotFound
	}

	chosen := albums[0]
	if len(albums) > 1 {
		choices := make([]Choice, 0, len(albums))
		for _, album := range albums {
			choices = append(choices, Choice{Title: album.Name})
		}
		index, err := chooser.Choose(ctx, choices)
		if err != nil {
			return "", nil, err
		}
		chosen = albums[index]
	}

	songs, err := pm.catalog.SongsByAlbum(ctx, chosen.ID)
	if err != nil {
		return "", nil, fmt.Errorf("album tracks lookup failed: %w", err)
	}

	tracks := make([]Track, 0, len(songs))
	for _, song := range songs {
		track, err := pm.resolver.ResolveURI(ctx, song.Path)
		if err != nil {
			log.Printf("album %q: skipping unresolvable locator %q: %v", chosen.Name, song.Path, err)
			continue
		}
		tracks = append(tracks, track)
	}
	return chosen.Name, tracks, nil
}
