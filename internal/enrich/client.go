package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/pfrederiksen/concert-events/internal/event"
)

const (
	DefaultBaseURL = "https://musicbrainz.org/ws/2"
	userAgent      = "concert-events/1.0 (github.com/pfrederiksen/concert-events)"
)

// Info is the enrichment result for one band. Both lists are empty, never
// nil, when nothing could be found.
type Info struct {
	Members []string `json:"members"`
	Genres  []string `json:"genres"`
}

func emptyInfo() Info {
	return Info{Members: []string{}, Genres: []string{}}
}

// Client looks up band members and genres on MusicBrainz. Lookups retry
// transient failures a bounded number of times with exponential backoff and
// degrade to empty lists on exhaustion; enrichment never aborts record
// assembly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	maxGenres  int
	maxRetries int
	log        zerolog.Logger
}

// NewClient creates an enrichment client.
func NewClient(maxGenres, maxRetries int, cache *Cache, log zerolog.Logger) *Client {
	if maxGenres <= 0 {
		maxGenres = 3
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if cache == nil {
		cache = NewCache(0)
	}
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		maxGenres:  maxGenres,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Cache returns the client's lookup cache so callers can persist it.
func (c *Client) Cache() *Cache {
	return c.cache
}

type artistSearchResult struct {
	Artists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
}

type artistDetail struct {
	Relations []struct {
		Type   string `json:"type"`
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"relations"`
	Tags []struct {
		Count int    `json:"count"`
		Name  string `json:"name"`
	} `json:"tags"`
}

// BandInfo returns members and genres for a band name. An ambiguous search
// (zero or more than one artist) yields empty lists; so does any failure
// after retries are exhausted.
func (c *Client) BandInfo(ctx context.Context, name string) Info {
	if cached := c.cache.Get(name); cached != nil {
		return *cached
	}

	info := c.lookup(ctx, name)
	c.cache.Set(name, info)
	return info
}

func (c *Client) lookup(ctx context.Context, name string) Info {
	var search artistSearchResult
	searchURL := fmt.Sprintf("%s/artist?query=%s&fmt=json",
		c.baseURL, url.QueryEscape(fmt.Sprintf("artist:%q", name)))
	if err := c.getJSON(ctx, searchURL, &search); err != nil {
		c.log.Warn().Err(err).Str("band", name).Msg("artist search failed")
		return emptyInfo()
	}

	// More than one plausible match means the name is too ambiguous to
	// attribute metadata safely.
	if len(search.Artists) != 1 {
		c.log.Debug().Str("band", name).Int("matches", len(search.Artists)).
			Msg("skipping ambiguous artist")
		return emptyInfo()
	}

	var detail artistDetail
	detailURL := fmt.Sprintf("%s/artist/%s?inc=artist-rels+tags&fmt=json",
		c.baseURL, url.PathEscape(search.Artists[0].ID))
	if err := c.getJSON(ctx, detailURL, &detail); err != nil {
		c.log.Warn().Err(err).Str("band", name).Msg("artist detail fetch failed")
		return emptyInfo()
	}

	info := emptyInfo()
	seen := make(map[string]bool)
	for _, rel := range detail.Relations {
		if rel.Type != "member of band" {
			continue
		}
		if rel.Artist.Name == "" || seen[rel.Artist.Name] {
			continue
		}
		seen[rel.Artist.Name] = true
		info.Members = append(info.Members, rel.Artist.Name)
	}

	tags := detail.Tags
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Count > tags[j].Count })
	for i := 0; i < len(tags) && i < c.maxGenres; i++ {
		info.Genres = append(info.Genres, tags[i].Name)
	}

	return info
}

// getJSON performs a GET with bounded exponential-backoff retries and decodes
// the JSON response into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("transient status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries-1)),
		ctx)
	return backoff.Retry(op, b)
}

// EnrichEvents fills in the members and genres lists of each record. Bands
// that cannot be resolved keep their empty lists.
func (c *Client) EnrichEvents(ctx context.Context, events []*event.Event) {
	for _, ev := range events {
		if ev.Band == "" {
			continue
		}
		info := c.BandInfo(ctx, ev.Band)
		ev.Members = info.Members
		ev.Genres = info.Genres
	}
}
