package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/playlist"
)

const (
	DefaultBaseURL     = "https://itunes.apple.com"
	DefaultTimeout     = 10 * time.Second
	DefaultMinInterval = 300 * time.Millisecond

	userAgent = "riffle/0.1 (https://github.com/llehouerou/riffle)"
)

// Options configures a Client. Zero fields take defaults; a negative
// MinInterval disables rate limiting.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MinInterval time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Client searches the iTunes catalog.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	minInterval time.Duration
	log         *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

var _ Searcher = (*Client)(nil)

// New creates an iTunes catalog client.
func New(opts Options) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		httpClient:  opts.HTTPClient,
		minInterval: opts.MinInterval,
		log:         opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	switch {
	case c.minInterval == 0:
		c.minInterval = DefaultMinInterval
	case c.minInterval < 0:
		c.minInterval = 0
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.log = c.log.Named("catalog")
	return c
}

type searchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []searchResult `json:"results"`
}

type searchResult struct {
	TrackID         int64  `json:"trackId"`
	TrackName       string `json:"trackName"`
	ArtistName      string `json:"artistName"`
	ArtworkURL100   string `json:"artworkUrl100"`
	PreviewURL      string `json:"previewUrl"`
	TrackTimeMillis int64  `json:"trackTimeMillis"`
}

// Search fetches one page of songs matching q.
//
// The catalog has no offset parameter, so the client asks for
// Offset+Limit results and slices the page out of the playable ones.
// A non-200 answer yields an empty page rather than an error.
func (c *Client) Search(ctx context.Context, q Query) (Page, error) {
	q, err := q.Normalize()
	if err != nil {
		return Page{}, err
	}

	results, ok, err := c.fetch(ctx, q.Term, q.Country, q.Offset+q.Limit)
	if err != nil {
		return Page{}, err
	}
	if !ok {
		return Page{Offset: q.Offset}, nil
	}

	songs := playableSongs(results)
	start := min(q.Offset, len(songs))
	end := min(q.Offset+q.Limit, len(songs))
	return Page{
		Songs:  songs[start:end],
		Offset: q.Offset,
		Total:  len(songs),
	}, nil
}

// Section fetches the songs of a browse shelf.
func (c *Client) Section(ctx context.Context, s Section) ([]playlist.Song, error) {
	page, err := c.Search(ctx, s.Query())
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.Title, err)
	}
	return page.Songs, nil
}

// fetch runs one catalog request. ok is false when the catalog answered
// with a non-200 status.
func (c *Client) fetch(ctx context.Context, term, country string, limit int) ([]searchResult, bool, error) {
	if err := c.waitForRateLimit(ctx); err != nil {
		return nil, false, err
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "music")
	params.Set("limit", strconv.Itoa(limit))
	if country != "" {
		params.Set("country", country)
	}
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Warn("catalog search failed",
			zap.String("term", term),
			zap.Int("status", resp.StatusCode))
		return nil, false, nil
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	c.log.Debug("catalog search",
		zap.String("term", term),
		zap.Int("results", result.ResultCount))
	return result.Results, true, nil
}

// waitForRateLimit spaces requests at least minInterval apart.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.minInterval > 0 && !c.lastRequest.IsZero() {
		wait := c.minInterval - time.Since(c.lastRequest)
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// playableSongs keeps results with a preview and maps them to songs.
func playableSongs(results []searchResult) []playlist.Song {
	return lo.FilterMap(results, func(r searchResult, _ int) (playlist.Song, bool) {
		if r.PreviewURL == "" {
			return playlist.Song{}, false
		}
		return playlist.Song{
			ID:       strconv.FormatInt(r.TrackID, 10),
			Title:    r.TrackName,
			Artist:   r.ArtistName,
			CoverURL: strings.Replace(r.ArtworkURL100, "100x100", "300x300", 1),
			AudioURL: r.PreviewURL,
			Duration: roundToSeconds(r.TrackTimeMillis),
		}, true
	})
}

func roundToSeconds(ms int64) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(math.Round(float64(ms)/1000)) * time.Second
}
