package music_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/portfolio_server/music"
)

const endpoint = "https://ws.audioscrobbler.com/2.0"

var endpointPattern = `=~^https://ws\.audioscrobbler\.com/2\.0`

func images(url string) []map[string]string {
	return []map[string]string{
		{"#text": url + "/small.png", "size": "small"},
		{"#text": url + "/medium.png", "size": "medium"},
		{"#text": url + "/large.png", "size": "large"},
	}
}

func topArtists(names ...string) map[string]any {
	artists := make([]map[string]any, 0, len(names))
	for i, n := range names {
		artists = append(artists, map[string]any{
			"name":  n,
			"@attr": map[string]string{"rank": strconv.Itoa(i + 1)},
			"image": images("https://img.example.com/" + n),
		})
	}
	return map[string]any{"topartists": map[string]any{"artist": artists}}
}

func topTracks(titles ...string) map[string]any {
	tracks := make([]map[string]any, 0, len(titles))
	for i, n := range titles {
		tracks = append(tracks, map[string]any{
			"name":   n,
			"artist": map[string]string{"name": "Artist " + n},
			"@attr":  map[string]string{"rank": strconv.Itoa(i + 1)},
			"image":  images("https://img.example.com/" + n),
		})
	}
	return map[string]any{"toptracks": map[string]any{"track": tracks}}
}

func newMockClient(t *testing.T) (*httpmock.MockTransport, music.Client) {
	t.Helper()
	mt := httpmock.NewMockTransport()
	hc := music.NewHTTPClient("portfolio-test", 5*time.Second, &http.Client{Transport: mt})
	return mt, music.NewClient(endpoint, hc)
}

func TestClientTopArtists(t *testing.T) {
	ctx := context.Background()
	t.Run("should send query and parse artists", func(t *testing.T) {
		// given
		mt, c := newMockClient(t)
		var got *http.Request
		mt.RegisterResponder("GET", endpointPattern, func(r *http.Request) (*http.Response, error) {
			got = r
			return httpmock.NewJsonResponse(http.StatusOK, topArtists("Muse", "Queen"))
		})
		// when
		artists, err := c.TopArtists(ctx, music.Query{APIKey: "key", User: "dantespe", Limit: 10})
		// then
		require.NoError(t, err)
		assert.Equal(t, []music.Artist{
			{Name: "Muse", Rank: 1, ImageURL: "https://img.example.com/Muse/medium.png"},
			{Name: "Queen", Rank: 2, ImageURL: "https://img.example.com/Queen/medium.png"},
		}, artists)
		q := got.URL.Query()
		assert.Equal(t, music.MethodTopArtists, q.Get("method"))
		assert.Equal(t, "key", q.Get("api_key"))
		assert.Equal(t, "dantespe", q.Get("user"))
		assert.Equal(t, "overall", q.Get("period"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "portfolio-test", got.Header.Get("User-Agent"))
	})
	t.Run("should return HTTPError for unexpected status", func(t *testing.T) {
		mt, c := newMockClient(t)
		mt.RegisterResponder("GET", endpointPattern, httpmock.NewStringResponder(http.StatusBadGateway, "upstream down"))
		_, err := c.TopArtists(ctx, music.Query{})
		var httpErr *music.HTTPError
		if assert.ErrorAs(t, err, &httpErr) {
			assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		}
	})
	t.Run("should return APIError for error body", func(t *testing.T) {
		mt, c := newMockClient(t)
		mt.RegisterResponder("GET", endpointPattern, httpmock.NewJsonResponderOrPanic(http.StatusForbidden, map[string]any{
			"error": 10, "message": "Invalid API key",
		}))
		_, err := c.TopArtists(ctx, music.Query{})
		var apiErr *music.APIError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, 10, apiErr.Code)
			assert.Equal(t, "Invalid API key", apiErr.Message)
		}
	})
	t.Run("should fail on unexpected shape", func(t *testing.T) {
		mt, c := newMockClient(t)
		mt.RegisterResponder("GET", endpointPattern, httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"topartists": map[string]any{"artist": []map[string]any{{"name": "Muse", "image": []any{}}}},
		}))
		_, err := c.TopArtists(ctx, music.Query{})
		assert.Error(t, err)
	})
	t.Run("should fail on invalid json", func(t *testing.T) {
		mt, c := newMockClient(t)
		mt.RegisterResponder("GET", endpointPattern, httpmock.NewStringResponder(http.StatusOK, "<html>"))
		_, err := c.TopArtists(ctx, music.Query{})
		assert.Error(t, err)
	})
	t.Run("should return empty list for zero artists", func(t *testing.T) {
		mt, c := newMockClient(t)
		mt.RegisterResponder("GET", endpointPattern, httpmock.NewJsonResponderOrPanic(http.StatusOK, topArtists()))
		artists, err := c.TopArtists(ctx, music.Query{})
		require.NoError(t, err)
		assert.Empty(t, artists)
	})
}

func TestClientTopTracks(t *testing.T) {
	ctx := context.Background()
	mt, c := newMockClient(t)
	mt.RegisterResponder("GET", endpointPattern, func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Get("method") != music.MethodTopTracks {
			return httpmock.NewStringResponse(http.StatusBadRequest, "wrong method"), nil
		}
		return httpmock.NewJsonResponse(http.StatusOK, topTracks("Hysteria"))
	})
	songs, err := c.TopTracks(ctx, music.Query{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []music.Song{
		{Title: "Hysteria", Artist: "Artist Hysteria", Rank: 1, ImageURL: "https://img.example.com/Hysteria/medium.png"},
	}, songs)
}
