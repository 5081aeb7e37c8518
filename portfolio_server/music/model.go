package music

import (
	"fmt"
	"strconv"
)

type Artist struct {
	Name     string `json:"name"`
	Rank     int    `json:"rank"`
	ImageURL string `json:"image_url"`
}

type Song struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Rank     int    `json:"rank"`
	ImageURL string `json:"image_url"`
}

// Snapshot is the cached content of the music page.
type Snapshot struct {
	Artists []Artist `json:"artists"`
	Songs   []Song   `json:"songs"`
}

type SectionStatus string

const (
	SectionOK     SectionStatus = "ok"
	SectionEmpty  SectionStatus = "empty"
	SectionFailed SectionStatus = "failed"
)

// SectionResult tells apart an API that returned no items from one that failed.
type SectionResult struct {
	Status SectionStatus `json:"status"`
	Count  int           `json:"count"`
	Reason string        `json:"reason,omitempty"`
}

func sectionResult(n int, err error) SectionResult {
	switch {
	case err != nil:
		return SectionResult{Status: SectionFailed, Reason: err.Error()}
	case n == 0:
		return SectionResult{Status: SectionEmpty, Reason: "no items returned"}
	}
	return SectionResult{Status: SectionOK, Count: n}
}

type Report struct {
	Artists SectionResult `json:"artists"`
	Songs   SectionResult `json:"songs"`
}

// Last.fm response shapes.

type lfmImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

type lfmAttr struct {
	Rank string `json:"rank"`
}

type lfmArtist struct {
	Name  string     `json:"name"`
	Attr  *lfmAttr   `json:"@attr"`
	Image []lfmImage `json:"image"`
}

type lfmTrack struct {
	Name   string `json:"name"`
	Artist *struct {
		Name string `json:"name"`
	} `json:"artist"`
	Attr  *lfmAttr   `json:"@attr"`
	Image []lfmImage `json:"image"`
}

type topArtistsResponse struct {
	TopArtists *struct {
		Artist []lfmArtist `json:"artist"`
	} `json:"topartists"`
}

type topTracksResponse struct {
	TopTracks *struct {
		Track []lfmTrack `json:"track"`
	} `json:"toptracks"`
}

type errorResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// displayImageIndex is the "medium" image in Last.fm image lists.
const displayImageIndex = 1

func parseRank(a *lfmAttr) (int, error) {
	if a == nil {
		return 0, fmt.Errorf("missing @attr")
	}
	r, err := strconv.Atoi(a.Rank)
	if err != nil {
		return 0, fmt.Errorf("invalid rank %q: %w", a.Rank, err)
	}
	return r, nil
}

func displayImage(images []lfmImage) (string, error) {
	if len(images) <= displayImageIndex {
		return "", fmt.Errorf("expected at least %d images, got %d", displayImageIndex+1, len(images))
	}
	return images[displayImageIndex].URL, nil
}

func (r topArtistsResponse) toArtists() ([]Artist, error) {
	if r.TopArtists == nil {
		return nil, fmt.Errorf("missing topartists")
	}
	artists := make([]Artist, 0, len(r.TopArtists.Artist))
	for i, a := range r.TopArtists.Artist {
		rank, err := parseRank(a.Attr)
		if err != nil {
			return nil, fmt.Errorf("artist %d: %w", i, err)
		}
		img, err := displayImage(a.Image)
		if err != nil {
			return nil, fmt.Errorf("artist %d: %w", i, err)
		}
		artists = append(artists, Artist{Name: a.Name, Rank: rank, ImageURL: img})
	}
	return artists, nil
}

func (r topTracksResponse) toSongs() ([]Song, error) {
	if r.TopTracks == nil {
		return nil, fmt.Errorf("missing toptracks")
	}
	songs := make([]Song, 0, len(r.TopTracks.Track))
	for i, t := range r.TopTracks.Track {
		if t.Artist == nil {
			return nil, fmt.Errorf("track %d: missing artist", i)
		}
		rank, err := parseRank(t.Attr)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		img, err := displayImage(t.Image)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		songs = append(songs, Song{Title: t.Name, Artist: t.Artist.Name, Rank: rank, ImageURL: img})
	}
	return songs, nil
}
