package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
)

// ErrUnsupportedFormat is returned when a stream is neither MP3, AAC/M4A nor FLAC.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const (
	formatMP3  = "mp3"
	formatAAC  = "aac"
	formatFLAC = "flac"
)

// memFile exposes a downloaded preview as an io.ReadSeekCloser.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// detectFormat picks a decoder from the response content type, falling back
// to the URL's extension when the server sends something generic.
func detectFormat(contentType, rawURL string) (string, error) {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "audio/mpeg", "audio/mp3":
			return formatMP3, nil
		case "audio/mp4", "audio/x-m4a", "audio/m4a", "audio/aac", "audio/aacp":
			return formatAAC, nil
		case "audio/flac", "audio/x-flac":
			return formatFLAC, nil
		}
	}

	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".mp3":
		return formatMP3, nil
	case ".m4a", ".mp4", ".m4p":
		return formatAAC, nil
	case ".flac":
		return formatFLAC, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
}

func decode(ctx context.Context, format string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := memFile{bytes.NewReader(data)}
	switch format {
	case formatMP3:
		return decodeMP3(rc)
	case formatAAC:
		return decodeM4A(ctx, rc)
	case formatFLAC:
		return flac.Decode(io.Reader(rc))
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
