// Package goldencheetah is a client for the REST API served by a locally
// running GoldenCheetah instance. It fetches the athlete roster, per-athlete
// activity indexes and per-activity sample data, normalizing the server's
// loosely structured CSV and JSON payloads into stable, column-named tabular
// values. Known in-band error bodies become typed errors, and fetches are
// memoized so repeated logical requests never hit the network twice.
package goldencheetah

import (
	"context"
	"net/http"

	"github.com/lildude/goldencheetah/internal/cache"
	"github.com/lildude/goldencheetah/internal/logger"
	"github.com/sirupsen/logrus"
)

// Client provides access to one GoldenCheetah server. Fetched bodies and
// normalized results are memoized for the client's lifetime; recorded
// activity data is immutable server-side, so entries never expire. A Client
// is not safe for concurrent use: callers wanting parallel fetches must add
// their own synchronization to keep the one-request-per-key guarantee.
type Client struct {
	// Athlete is the full athlete name used by per-athlete operations. It may
	// be set after construction but must be non-empty before any per-athlete
	// call.
	Athlete string

	host     string
	hc       *http.Client
	classify Classifier
	store    cache.Store
	rosters  *cache.Memo[*Table]
	indexes  *cache.Memo[*ActivityIndex]
	series   *cache.Memo[*SampleSeries]
	log      logrus.FieldLogger
}

// NewClient returns a client for the API at host. An empty host selects
// DefaultHost; host must end so that appending a path segment yields a valid
// URL. If hc is nil, http.DefaultClient is used.
func NewClient(host, athlete string, hc *http.Client) *Client {
	if host == "" {
		host = DefaultHost
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		Athlete:  athlete,
		host:     host,
		hc:       hc,
		classify: DefaultClassifier,
		store:    cache.NewMemory(),
		rosters:  cache.NewMemo[*Table](),
		indexes:  cache.NewMemo[*ActivityIndex](),
		series:   cache.NewMemo[*SampleSeries](),
		log:      logger.NewLogger(),
	}
}

// SetClassifier replaces the in-band error classifier, for server builds
// whose error wording differs from DefaultClassifier.
func (c *Client) SetClassifier(fn Classifier) {
	if fn != nil {
		c.classify = fn
	}
}

// SetStore replaces the raw body cache, e.g. with cache.NewRedis to share
// fetched bodies across client instances.
func (c *Client) SetStore(s cache.Store) {
	if s != nil {
		c.store = s
	}
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		c.log = l
	}
}

// Athletes returns the server's athlete roster as served, without renaming.
func (c *Client) Athletes(ctx context.Context) (*Table, error) {
	endpoint := c.athleteListEndpoint()
	return c.rosters.Do(endpoint, func() (*Table, error) {
		body, err := c.fetch(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		return parseTable(body)
	})
}

// Activities returns the configured athlete's normalized activity index, in
// server-supplied order, oldest first.
func (c *Client) Activities(ctx context.Context) (*ActivityIndex, error) {
	if c.Athlete == "" {
		return nil, ErrAthleteNotConfigured
	}
	return c.indexes.Do(c.Athlete, func() (*ActivityIndex, error) {
		body, err := c.fetch(ctx, c.athleteEndpoint(c.Athlete))
		if err != nil {
			return nil, err
		}
		return parseActivityIndex(body)
	})
}

// Activity returns the sample series for one activity file of the configured
// athlete. Results are memoized per (athlete, filename), so equal filenames
// under different athletes are never conflated.
func (c *Client) Activity(ctx context.Context, filename string) (*SampleSeries, error) {
	if c.Athlete == "" {
		return nil, ErrAthleteNotConfigured
	}
	return c.series.Do(cache.Key(c.Athlete, filename), func() (*SampleSeries, error) {
		body, err := c.fetch(ctx, c.activityEndpoint(c.Athlete, filename))
		if err != nil {
			return nil, err
		}
		return parseSampleSeries(body)
	})
}

// ActivitiesBulk fetches several activities sequentially, in the given order,
// returning them keyed by filename. The first failure aborts the batch. The
// sequential loop is deliberate: each fetch populates the cache before the
// next starts, so overlapping filenames are never requested twice.
func (c *Client) ActivitiesBulk(ctx context.Context, filenames []string) (map[string]*SampleSeries, error) {
	out := make(map[string]*SampleSeries, len(filenames))
	for _, filename := range filenames {
		series, err := c.Activity(ctx, filename)
		if err != nil {
			return nil, err
		}
		out[filename] = series
	}
	return out, nil
}

// LastActivity returns the most recent activity's index record together with
// its sample data. The pair is a new value; the cached index is left
// untouched.
func (c *Client) LastActivity(ctx context.Context) (*ActivityDetail, error) {
	index, err := c.Activities(ctx)
	if err != nil {
		return nil, err
	}
	last, err := index.Last()
	if err != nil {
		return nil, err
	}
	series, err := c.Activity(ctx, last.Filename)
	if err != nil {
		return nil, err
	}
	return &ActivityDetail{Activity: last, Samples: series}, nil
}
