package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gopxl/beep/v2"
	"go.uber.org/zap"
)

const (
	userAgent = "riffle/0.1 (https://github.com/llehouerou/riffle)"

	// maxPreviewBytes bounds a single download; previews are ~30s clips.
	maxPreviewBytes = 32 << 20
)

// HTTPOpener opens handles that download and decode remote previews.
type HTTPOpener struct {
	client *http.Client
	log    *zap.Logger
}

// NewHTTPOpener creates an opener. A nil client gets a 30s timeout default.
func NewHTTPOpener(client *http.Client, log *zap.Logger) *HTTPOpener {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPOpener{client: client, log: log}
}

// Open returns immediately; the download and decode run in the background
// and are reported through the handle's hooks.
func (o *HTTPOpener) Open(url string) (Handle, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty url", ErrUnsupportedFormat)
	}
	return newStreamHandle(url, func(ctx context.Context) (beep.StreamSeekCloser, beep.Format, error) {
		return o.load(ctx, url)
	}), nil
}

func (o *HTTPOpener) load(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("fetch preview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, beep.Format{}, fmt.Errorf("fetch preview: unexpected status: %s", resp.Status)
	}

	format, err := detectFormat(resp.Header.Get("Content-Type"), url)
	if err != nil {
		return nil, beep.Format{}, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("read preview: %w", err)
	}

	streamer, f, err := decode(ctx, format, data)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", format, err)
	}

	o.log.Debug("preview loaded",
		zap.String("url", url),
		zap.String("format", format),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)),
	)
	return streamer, f, nil
}
