package audionode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqon/groovebot/internal/music"
)

func TestSearchDecodesSearchResults(t *testing.T) {
	var gotIdentifier, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentifier = r.URL.Query().Get("identifier")
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/v1/loadtracks", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"loadType": "search",
			"tracks": []map[string]string{
				{"title": "Giant Steps", "author": "John Coltrane", "uri": "https://music.example/gs"},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret")

	result, err := c.Search(context.Background(), "giant steps", music.SourceDefault)
	require.NoError(t, err)
	assert.Equal(t, "ytmsearch:giant steps", gotIdentifier)
	assert.Equal(t, "secret", gotAuth)

	require.Len(t, result.Tracks, 1)
	assert.Equal(t, "Giant Steps", result.Tracks[0].Title)
	assert.Equal(t, music.SourcePublic, result.Tracks[0].Source)
}

func TestSearchDecodesPlaylist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"loadType": "playlist",
			"playlist": map[string]interface{}{
				"name": "Morning Mix",
				"tracks": []map[string]string{
					{"title": "One"},
					{"title": "Two"},
				},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	result, err := c.Search(context.Background(), "https://music.example/list", music.SourceDefault)
	require.NoError(t, err)
	require.NotNil(t, result.Playlist)
	assert.Equal(t, "Morning Mix", result.Playlist.Name)
	assert.Len(t, result.Playlist.Tracks, 2)
}

func TestSearchEmptyLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"loadType": "empty"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	result, err := c.Search(context.Background(), "nothing", music.SourceDefault)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	_, err := c.Search(context.Background(), "anything", music.SourceDefault)
	assert.ErrorIs(t, err, ErrNodeRequestFailed)
}

func TestPlaySendsCommand(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	track := music.Track{Title: "Naima", URI: "file:///naima.flac"}
	require.NoError(t, c.Play(context.Background(), "guild-1", track, 25))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/v1/players/guild-1/play", gotPath)
	assert.Equal(t, "file:///naima.flac", gotBody["uri"])
	assert.Equal(t, float64(25), gotBody["volume"])
}

func TestBuildIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		query string
		hint  music.SourceHint
		want  string
	}{
		{name: "exact load", query: "file:///naima.flac", hint: music.SourceNone, want: "file:///naima.flac"},
		{name: "youtube search", query: "naima", hint: music.SourceYouTube, want: "ytsearch:naima"},
		{name: "default search", query: "naima", hint: music.SourceDefault, want: "ytmsearch:naima"},
		{name: "default with url", query: "https://music.example/t", hint: music.SourceDefault, want: "https://music.example/t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildIdentifier(tt.query, tt.hint))
		})
	}
}
