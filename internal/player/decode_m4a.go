package player

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// aacFrameSize is the number of PCM frames per channel in one AAC-LC access unit.
const aacFrameSize = 1024

// ErrNotAAC is returned for M4A files whose audio track is not AAC.
var ErrNotAAC = errors.New("m4a: audio track is not AAC")

// m4aDecoder demuxes AAC access units with go-m4a and decodes them with
// go-faad2. Catalog previews are AAC-LC in an M4A container.
type m4aDecoder struct {
	container *m4a.Reader
	aac       *faad2.Decoder
	closer    io.Closer
	channels  int
	totalLen  int
	err       error

	next int          // index of the next access unit
	pcm  [][2]float64 // decoded frames not yet streamed
}

func decodeM4A(ctx context.Context, rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if container.Codec() != m4a.CodecAAC {
		return nil, beep.Format{}, ErrNotAAC
	}

	dec, err := faad2.NewDecoder(ctx)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if err := dec.Init(ctx, container.CodecConfig()); err != nil {
		dec.Close(context.Background())
		return nil, beep.Format{}, err
	}

	sampleRate := int(container.SampleRate())
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2, // mono is duplicated
		Precision:   2,
	}
	return &m4aDecoder{
		container: container,
		aac:       dec,
		closer:    rc,
		channels:  int(container.Channels()),
		totalLen:  int(container.Duration().Seconds() * float64(sampleRate)),
	}, format, nil
}

func (d *m4aDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if len(d.pcm) > 0 {
			c := copy(samples[n:], d.pcm)
			d.pcm = d.pcm[c:]
			n += c
			continue
		}
		if d.next >= d.container.SampleCount() {
			break
		}
		unit, err := d.container.ReadSample(d.next)
		if err != nil {
			d.err = err
			break
		}
		d.next++
		pcm, err := d.aac.Decode(context.Background(), unit)
		if err != nil {
			d.err = err
			break
		}
		d.pcm = toStereo(pcm, pcmChannels(d.channels, len(pcm)))
	}
	return n, n > 0
}

// pcmChannels returns the interleaving of a decoded access unit. faad2
// upmixes mono AAC to stereo when it is built with parametric stereo, so a
// mono track can still decode to two channels.
func pcmChannels(trackChannels, samples int) int {
	if trackChannels == 1 && samples > 0 && samples%(2*aacFrameSize) == 0 {
		return 2
	}
	return max(trackChannels, 1)
}

// toStereo converts interleaved int16 PCM to stereo frames, keeping the
// first two channels of multichannel audio.
func toStereo(pcm []int16, channels int) [][2]float64 {
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels]) / 32768.0
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1]) / 32768.0
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

func (d *m4aDecoder) Err() error { return d.err }

func (d *m4aDecoder) Len() int { return d.totalLen }

func (d *m4aDecoder) Position() int {
	end := d.totalLen
	if d.next < d.container.SampleCount() {
		end = int(d.container.SampleTime(d.next).Seconds() * float64(d.container.SampleRate()))
	}
	return max(end-len(d.pcm), 0)
}

// Seek moves to the access unit containing sample p.
func (d *m4aDecoder) Seek(p int) error {
	p = max(0, min(p, d.totalLen))
	pos := time.Duration(float64(p) / float64(d.container.SampleRate()) * float64(time.Second))
	d.next = d.container.SeekToTime(pos)
	d.pcm = nil
	d.err = nil
	return nil
}

func (d *m4aDecoder) Close() error {
	d.aac.Close(context.Background())
	return d.closer.Close()
}
