package music

import (
	"context"
	"encoding/json"
	"portfolio-server/pkg/log"
	"portfolio-server/pkg/xerrors"
	"portfolio-server/portfolio_server/cache"
	"time"

	"github.com/dustin/go-humanize"
)

// Page is the content of the music page.
type Page struct {
	Snapshot
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedAgo string    `json:"updated_ago"`
	// Stale is set when an expired snapshot is served because a refresh failed.
	Stale bool `json:"stale"`
}

// Limits are the sizes of the top lists.
type Limits struct {
	NumArtists int
	NumSongs   int
}

type Service struct {
	log          log.ILogger
	fetcher      *Fetcher
	cacheFactory cache.CacheFactory
	limits       func() Limits
	now          func() time.Time
}

// NewService returns a service for the music page.
// limits is consulted on every refresh so that configuration changes apply.
func NewService(logger log.ILogger, fetcher *Fetcher, cacheFactory cache.CacheFactory, limits func() Limits) *Service {
	return &Service{
		log:          logger,
		fetcher:      fetcher,
		cacheFactory: cacheFactory,
		limits:       limits,
		now:          time.Now,
	}
}

// Page returns the cached music page and refreshes it first when it is missing or expired.
//
// Concurrent callers observing a miss will each refresh.
// When a refresh fails with an expired snapshot in the cache the stale snapshot is returned.
// Configuration errors are always returned, since they need an operator.
func (s *Service) Page(ctx context.Context) (Page, error) {
	c := s.cacheFactory.NewKvCache()
	defer c.Destroy()
	fresh, err := s.isFresh(ctx, c)
	if err != nil {
		return Page{}, err
	}
	if !fresh {
		if _, _, err := s.Refresh(ctx); err != nil {
			if isConfigurationError(err) {
				return Page{}, err
			}
			ok, err2 := c.Contains(ctx, CacheKeySnapshot)
			if err2 != nil || !ok {
				return Page{}, err
			}
			s.log.Warnf("serving stale music snapshot: %v", err)
			p, err2 := s.read(ctx, c)
			if err2 != nil {
				return Page{}, err2
			}
			p.Stale = true
			return p, nil
		}
	}
	return s.read(ctx, c)
}

func isConfigurationError(err error) bool {
	return xerrors.IsKind(err, xerrors.KindConfigurationMissing) ||
		xerrors.IsKind(err, xerrors.KindSettingNotConfigured)
}

// Refresh forces a refresh with the current limits.
func (s *Service) Refresh(ctx context.Context) (Snapshot, Report, error) {
	l := s.limits()
	return s.fetcher.Refresh(ctx, l.NumArtists, l.NumSongs)
}

func (s *Service) isFresh(ctx context.Context, c cache.Cache) (bool, error) {
	for _, k := range []string{CacheKeySnapshot, CacheKeyUpdated} {
		ok, err := c.Contains(ctx, k)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		expired, err := c.IsExpired(ctx, k)
		if err != nil {
			return false, err
		}
		if expired {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) read(ctx context.Context, c cache.Cache) (Page, error) {
	b, err := c.Get(ctx, CacheKeySnapshot)
	if err != nil {
		return Page{}, err
	}
	var p Page
	if err := json.Unmarshal(b, &p.Snapshot); err != nil {
		return Page{}, err
	}
	u, err := c.GetOrNil(ctx, CacheKeyUpdated)
	if err != nil {
		return Page{}, err
	}
	if u != nil {
		if t, err := time.Parse(time.RFC3339, string(u)); err == nil {
			p.UpdatedAt = t
			p.UpdatedAgo = humanize.RelTime(t, s.now(), "ago", "from now")
		}
	}
	return p, nil
}
