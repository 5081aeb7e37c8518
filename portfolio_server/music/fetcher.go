package music

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"portfolio-server/pkg/log"
	"portfolio-server/pkg/utils"
	"portfolio-server/pkg/xerrors"
	"portfolio-server/portfolio_server/cache"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	SettingAPIKey   = "LAST_FM_API_KEY"
	SettingUsername = "LAST_FM_USERNAME"

	CacheKeySnapshot = "music"
	CacheKeyUpdated  = "music_updated"
)

// ErrConfigurationMissing matches errors for credentials that could not be resolved.
var ErrConfigurationMissing = xerrors.Sentinel(xerrors.KindConfigurationMissing)

// SettingsGetter resolves named settings.
type SettingsGetter interface {
	Get(ctx context.Context, name string) (string, error)
}

type Fetcher struct {
	log          log.ILogger
	client       Client
	settings     SettingsGetter
	cacheFactory cache.CacheFactory
	ttl          time.Duration
	now          func() time.Time
}

func NewFetcher(logger log.ILogger, client Client, settings SettingsGetter, cacheFactory cache.CacheFactory, ttl time.Duration) *Fetcher {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Fetcher{
		log:          logger,
		client:       client,
		settings:     settings,
		cacheFactory: cacheFactory,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (f *Fetcher) credentials(ctx context.Context) (apiKey, user string, err error) {
	apiKey, err = f.settings.Get(ctx, SettingAPIKey)
	if err != nil {
		return "", "", configurationMissing(SettingAPIKey, err)
	}
	user, err = f.settings.Get(ctx, SettingUsername)
	if err != nil {
		return "", "", configurationMissing(SettingUsername, err)
	}
	return apiKey, user, nil
}

// configurationMissing keeps setting errors which already carry a kind,
// so that placeholder errors stay visible as such.
func configurationMissing(name string, err error) error {
	if _, ok := xerrors.KindOf(err); ok {
		return fmt.Errorf("resolve %s: %w", name, err)
	}
	return xerrors.Wrap(xerrors.KindConfigurationMissing, err, "resolve "+name)
}

// Refresh fetches the top lists and stores them in the cache.
//
// Failures of the API are reported per section in the returned report and
// never fail the refresh. Errors are only returned for missing credentials
// or when the cache can not be written.
func (f *Fetcher) Refresh(ctx context.Context, numArtists, numSongs int) (Snapshot, Report, error) {
	apiKey, user, err := f.credentials(ctx)
	if err != nil {
		return Snapshot{}, Report{}, err
	}
	var (
		s          = Snapshot{Artists: []Artist{}, Songs: []Song{}}
		r          Report
		artistsErr error
		songsErr   error
	)
	// Sections fail independently: errors are kept per section and never
	// reach the group, so one failed section does not cancel the other.
	g := new(errgroup.Group)
	g.Go(func() error {
		artists, err := f.client.TopArtists(ctx, Query{APIKey: apiKey, User: user, Limit: numArtists})
		if err != nil {
			artistsErr = err
			return nil
		}
		s.Artists = sanitizeArtists(artists)
		return nil
	})
	g.Go(func() error {
		songs, err := f.client.TopTracks(ctx, Query{APIKey: apiKey, User: user, Limit: numSongs})
		if err != nil {
			songsErr = err
			return nil
		}
		s.Songs = sanitizeSongs(songs)
		return nil
	})
	_ = g.Wait()
	if artistsErr != nil {
		f.log.WithField("method", MethodTopArtists).Warnf("fetching top artists failed: %v", artistsErr)
	}
	if songsErr != nil {
		f.log.WithField("method", MethodTopTracks).Warnf("fetching top tracks failed: %v", songsErr)
	}
	r.Artists = sectionResult(len(s.Artists), artistsErr)
	r.Songs = sectionResult(len(s.Songs), songsErr)

	if err := f.store(ctx, s); err != nil {
		return s, r, err
	}
	f.log.WithField("artists", r.Artists.Status).WithField("songs", r.Songs.Status).Info("music refreshed")
	return s, r, nil
}

func (f *Fetcher) store(ctx context.Context, s Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	c := f.cacheFactory.NewKvCache()
	defer c.Destroy()
	updated := f.now().UTC().Format(time.RFC3339)
	return errors.Join(
		c.Add(ctx, CacheKeySnapshot, b, f.ttl),
		c.Add(ctx, CacheKeyUpdated, []byte(updated), f.ttl),
	)
}

func sanitizeArtists(artists []Artist) []Artist {
	if artists == nil {
		return []Artist{}
	}
	for i := range artists {
		if !utils.IsUrl(artists[i].ImageURL) {
			artists[i].ImageURL = ""
		}
	}
	return artists
}

func sanitizeSongs(songs []Song) []Song {
	if songs == nil {
		return []Song{}
	}
	for i := range songs {
		if !utils.IsUrl(songs[i].ImageURL) {
			songs[i].ImageURL = ""
		}
	}
	return songs
}
