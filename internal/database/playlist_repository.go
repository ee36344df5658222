package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arqon/groovebot/internal/music"
)

func (r *CatalogRepository) FindPlaylist(ctx context.Context, guildID, name string) (*music.CatalogPlaylist, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT playlist_id, guild_id, user_id, playlist_name
		FROM playlist
		WHERE guild_id = $1 AND LOWER(playlist_name) = LOWER($2)
	`

	var playlist music.CatalogPlaylist
	err := r.db.QueryRowContext(ctx, q, guildID, name).Scan(
		&playlist.ID, &playlist.GuildID, &playlist.OwnerID, &playlist.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *CatalogRepository) CreatePlaylist(ctx context.Context, guildID, ownerID, name string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("database is not initialized")
	}

	const q = `
		INSERT INTO playlist (guild_id, user_id, playlist_name)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, q, guildID, ownerID, name)
	return err
}

func (r *CatalogRepository) AddPlaylistTrack(ctx context.Context, playlistID, trackID int64) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("database is not initialized")
	}

	const q = `
		INSERT INTO playlist_tracks (playlist_id, track_id)
		VALUES ($1, $2)
	`

	_, err := r.db.ExecContext(ctx, q, playlistID, trackID)
	return err
}

func (r *CatalogRepository) ListPlaylistTracks(ctx context.Context, playlistID int64) ([]music.CatalogTrack, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT tracks.track_id, track_name, track_uri
		FROM playlist_tracks
		INNER JOIN tracks ON playlist_tracks.track_id = tracks.track_id
		WHERE playlist_id = $1
		ORDER BY playlist_tracks.id
	`

	rows, err := r.db.QueryContext(ctx, q, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []music.CatalogTrack
	for rows.Next() {
		var track music.CatalogTrack
		if err := rows.Scan(&track.ID, &track.Title, &track.URI); err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}
