package audionode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arqon/groovebot/internal/music"
)

var ErrNodeRequestFailed = errors.New("audio node request failed")

// Client drives a remote audio-rendering node over its REST surface. One
// client serves every guild; the node keys players by guild ID.
type Client struct {
	BaseURL    string
	Password   string
	HTTPClient *http.Client
}

func NewClient(host, password string) *Client {
	base := strings.TrimRight(host, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{
		BaseURL:    base,
		Password:   password,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Search(ctx context.Context, query string, hint music.SourceHint) (music.SearchResult, error) {
	params := url.Values{}
	params.Set("identifier", buildIdentifier(query, hint))

	var payload loadResponse
	if err := c.get(ctx, "/v1/loadtracks?"+params.Encode(), &payload); err != nil {
		return music.SearchResult{}, err
	}

	switch payload.LoadType {
	case loadTypePlaylist:
		playlist := &music.Playlist{Name: payload.Playlist.Name}
		for _, t := range payload.Playlist.Tracks {
			playlist.Tracks = append(playlist.Tracks, t.toTrack())
		}
		return music.SearchResult{Playlist: playlist}, nil
	case loadTypeTrack, loadTypeSearch:
		tracks := make([]music.Track, 0, len(payload.Tracks))
		for _, t := range payload.Tracks {
			tracks = append(tracks, t.toTrack())
		}
		return music.SearchResult{Tracks: tracks}, nil
	case loadTypeEmpty, "":
		return music.SearchResult{}, nil
	default:
		return music.SearchResult{}, fmt.Errorf("%w: unknown load type %q", ErrNodeRequestFailed, payload.LoadType)
	}
}

func (c *Client) Connect(ctx context.Context, guildID, channelID string) error {
	body := map[string]string{"channel_id": channelID}
	return c.send(ctx, http.MethodPut, "/v1/players/"+guildID+"/voice", body)
}

func (c *Client) Play(ctx context.Context, guildID string, track music.Track, volume int) error {
	body := map[string]interface{}{
		"uri":    track.URI,
		"title":  track.Title,
		"volume": volume,
	}
	return c.send(ctx, http.MethodPut, "/v1/players/"+guildID+"/play", body)
}

func (c *Client) Pause(ctx context.Context, guildID string, paused bool) error {
	body := map[string]bool{"paused": paused}
	return c.send(ctx, http.MethodPatch, "/v1/players/"+guildID, body)
}

func (c *Client) SetVolume(ctx context.Context, guildID string, volume int) error {
	body := map[string]int{"volume": volume}
	return c.send(ctx, http.MethodPatch, "/v1/players/"+guildID, body)
}

func (c *Client) Stop(ctx context.Context, guildID string) error {
	return c.send(ctx, http.MethodPost, "/v1/players/"+guildID+"/stop", nil)
}

func (c *Client) Disconnect(ctx context.Context, guildID string) error {
	return c.send(ctx, http.MethodDelete, "/v1/players/"+guildID, nil)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNodeRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrNodeRequestFailed, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.Password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNodeRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrNodeRequestFailed, resp.StatusCode)
	}
	return nil
}

// buildIdentifier maps a query and source hint onto the node's search
// identifier syntax.
func buildIdentifier(query string, hint music.SourceHint) string {
	switch hint {
	case music.SourceNone:
		return query
	case music.SourceYouTube:
		return "ytsearch:" + query
	default:
		if looksLikeURL(query) {
			return query
		}
		return "ytmsearch:" + query
	}
}

func looksLikeURL(value string) bool {
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return true
	}

	u, err := url.Parse(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}

const (
	loadTypeTrack    = "track"
	loadTypePlaylist = "playlist"
	loadTypeSearch   = "search"
	loadTypeEmpty    = "empty"
)

type loadResponse struct {
	LoadType string      `json:"loadType"`
	Tracks   []wireTrack `json:"tracks"`
	Playlist struct {
		Name   string      `json:"name"`
		Tracks []wireTrack `json:"tracks"`
	} `json:"playlist"`
}

type wireTrack struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	URI        string `json:"uri"`
	Artwork    string `json:"artworkUrl"`
	Album      string `json:"albumName"`
}

func (t wireTrack) toTrack() music.Track {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Unknown Title"
	}
	return music.Track{
		Title:   title,
		Artist:  t.Author,
		URI:     t.URI,
		Source:  music.SourcePublic,
		Artwork: t.Artwork,
		Album:   t.Album,
	}
}
