package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arqon/groovebot/internal/music"
)

// CatalogRepository implements music.Catalog against the relational store.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{db: GetDB()}
}

func (r *CatalogRepository) SearchSongs(ctx context.Context, query string) ([]music.CatalogSong, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT song_name, song_path
		FROM song
		WHERE song_name ILIKE $1
	`

	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []music.CatalogSong
	for rows.Next() {
		var song music.CatalogSong
		if err := rows.Scan(&song.Title, &song.Path); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (r *CatalogRepository) SearchSongsWithArtists(ctx context.Context, query string, limit int) ([]music.CatalogSong, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT song_name, COALESCE(artist_name, ''), song_path
		FROM song
		LEFT JOIN artist ON song.artist_id = artist.artist_id
		WHERE song_name ILIKE $1
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []music.CatalogSong
	for rows.Next() {
		var song music.CatalogSong
		if err := rows.Scan(&song.Title, &song.Artist, &song.Path); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (r *CatalogRepository) SearchAlbums(ctx context.Context, query string, limit int) ([]music.CatalogAlbum, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT album_id, album_name
		FROM album
		WHERE album_name ILIKE $1
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []music.CatalogAlbum
	for rows.Next() {
		var album music.CatalogAlbum
		if err := rows.Scan(&album.ID, &album.Name); err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

func (r *CatalogRepository) SongsByAlbum(ctx context.Context, albumID int64) ([]music.CatalogSong, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT song_name, song_path
		FROM song
		WHERE album_id = $1
	`

	rows, err := r.db.QueryContext(ctx, q, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []music.CatalogSong
	for rows.Next() {
		var song music.CatalogSong
		if err := rows.Scan(&song.Title, &song.Path); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (r *CatalogRepository) SearchTracks(ctx context.Context, query string) ([]music.CatalogTrack, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT track_id, track_name, track_uri
		FROM tracks
		WHERE track_name ILIKE $1
	`

	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%")
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

func (r *CatalogRepository) FindTrackByURI(ctx context.Context, uri string) (*music.CatalogTrack, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	const q = `
		SELECT track_id, track_name, track_uri
		FROM tracks
		WHERE track_uri = $1
	`

	var track music.CatalogTrack
	err := r.db.QueryRowContext(ctx, q, uri).Scan(&track.ID, &track.Title, &track.URI)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &track, nil
}

func (r *CatalogRepository) InsertTrack(ctx context.Context, title, uri string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("database is not initialized")
	}

	const q = `
		INSERT INTO tracks (track_name, track_uri)
		VALUES ($1, $2)
		RETURNING track_id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, q, title, uri).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
