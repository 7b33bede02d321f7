package player

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureRate = 44100

// silentAACFrame is one AAC-LC mono access unit of digital silence: an SCE
// with max_sfb 0 followed by END.
var silentAACFrame = []byte{0x01, 0x40, 0x20, 0x07}

// box serializes an MP4 box.
func box(kind string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	out := binary.BigEndian.AppendUint32(nil, uint32(8+len(body)))
	return append(append(out, kind...), body...)
}

// fullBox prepends a zero version and flags.
func fullBox(kind string, flags uint32, payload ...[]byte) []byte {
	return box(kind, append([][]byte{u32(flags)}, payload...)...)
}

func u16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }
func u32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }
func zeros(n int) []byte  { return make([]byte, n) }

// descriptor serializes an MPEG-4 ES descriptor with a one byte length.
func descriptor(tag byte, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	return append([]byte{tag, byte(len(body))}, body...)
}

var unityMatrix = bytes.Join([][]byte{
	u32(0x00010000), u32(0), u32(0),
	u32(0), u32(0x00010000), u32(0),
	u32(0), u32(0), u32(0x40000000),
}, nil)

// silentM4A builds a mono 44.1kHz AAC-LC M4A holding units access units.
func silentM4A(units int) []byte {
	duration := uint32(units * aacFrameSize)

	ftyp := box("ftyp", []byte("M4A "), u32(0), []byte("M4A mp42isom"))

	esds := fullBox("esds", 0, descriptor(0x03,
		u16(1), []byte{0},
		descriptor(0x04,
			[]byte{0x40, 0x15}, zeros(3), u32(0), u32(0),
			descriptor(0x05, []byte{0x12, 0x08}), // AAC-LC, 44100, mono
		),
		descriptor(0x06, []byte{0x02}),
	))
	mp4a := box("mp4a",
		zeros(6), u16(1), zeros(8),
		u16(1), u16(16), u16(0), u16(0), u32(fixtureRate<<16),
		esds,
	)

	sizes := make([][]byte, units)
	for i := range sizes {
		sizes[i] = u32(uint32(len(silentAACFrame)))
	}

	moov := func(chunkOffset uint32) []byte {
		stbl := box("stbl",
			fullBox("stsd", 0, u32(1), mp4a),
			fullBox("stts", 0, u32(1), u32(uint32(units)), u32(aacFrameSize)),
			fullBox("stsc", 0, u32(1), u32(1), u32(uint32(units)), u32(1)),
			fullBox("stsz", 0, u32(0), u32(uint32(units)), bytes.Join(sizes, nil)),
			fullBox("stco", 0, u32(1), u32(chunkOffset)),
		)
		minf := box("minf",
			fullBox("smhd", 0, u16(0), u16(0)),
			box("dinf", fullBox("dref", 0, u32(1), fullBox("url ", 1))),
			stbl,
		)
		mdia := box("mdia",
			fullBox("mdhd", 0, u32(0), u32(0), u32(fixtureRate), u32(duration), u16(0x55c4), u16(0)),
			fullBox("hdlr", 0, u32(0), []byte("soun"), zeros(12), []byte("SoundHandler\x00")),
			minf,
		)
		trak := box("trak",
			fullBox("tkhd", 7, u32(0), u32(0), u32(1), u32(0), u32(duration),
				zeros(8), u16(0), u16(0), u16(0x0100), u16(0), unityMatrix, u32(0), u32(0)),
			mdia,
		)
		return box("moov",
			fullBox("mvhd", 0, u32(0), u32(0), u32(fixtureRate), u32(duration),
				u32(0x00010000), u16(0x0100), zeros(10), unityMatrix, zeros(24), u32(2)),
			trak,
		)
	}

	mdat := box("mdat", bytes.Repeat(silentAACFrame, units))
	offset := uint32(len(ftyp) + len(moov(0)) + 8)
	return bytes.Join([][]byte{ftyp, moov(offset), mdat}, nil)
}

func TestDecodeM4A_SilentPreview(t *testing.T) {
	const units = 20
	s, format, err := decode(t.Context(), formatAAC, silentM4A(units))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 2, format.NumChannels)
	assert.EqualValues(t, fixtureRate, format.SampleRate)
	assert.Equal(t, units*aacFrameSize, s.Len())

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for _, f := range buf[:n] {
			require.Less(t, math.Abs(f[0]), 1e-3)
			require.Equal(t, f[0], f[1], "mono is duplicated")
		}
		total += n
		if !ok {
			break
		}
	}
	require.NoError(t, s.Err())
	// The decoder may hold back its first access unit as priming.
	assert.GreaterOrEqual(t, total, (units-1)*aacFrameSize)
	assert.LessOrEqual(t, total, units*aacFrameSize)
	assert.Equal(t, s.Len(), s.Position())
}

func TestDecodeM4A_Seek(t *testing.T) {
	const units = 20
	s, _, err := decode(t.Context(), formatAAC, silentM4A(units))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Seek(s.Len()/2))
	assert.InDelta(t, s.Len()/2, s.Position(), aacFrameSize)

	n, ok := s.Stream(make([][2]float64, 256))
	assert.True(t, ok)
	assert.Positive(t, n)

	require.NoError(t, s.Seek(-10))
	assert.Equal(t, 0, s.Position())
}

func TestDecodeM4A_NotAContainer(t *testing.T) {
	_, _, err := decode(t.Context(), formatAAC, []byte("<html>not audio</html>"))
	assert.Error(t, err)
}

func TestPCMChannels(t *testing.T) {
	tests := []struct {
		name           string
		track, samples int
		want           int
	}{
		{"mono", 1, aacFrameSize, 1},
		{"mono upmixed to stereo", 1, 2 * aacFrameSize, 2},
		{"mono priming unit", 1, 0, 1},
		{"stereo", 2, 2 * aacFrameSize, 2},
		{"5.1", 6, 6 * aacFrameSize, 6},
		{"unknown track layout", 0, aacFrameSize, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pcmChannels(tt.track, tt.samples))
		})
	}
}

func TestToStereo(t *testing.T) {
	assert.Equal(t, [][2]float64{{0.5, 0.5}, {-0.5, -0.5}}, toStereo([]int16{16384, -16384}, 1))
	assert.Equal(t, [][2]float64{{0.5, -0.5}}, toStereo([]int16{16384, -16384}, 2))
	assert.Equal(t, [][2]float64{{0.5, -0.5}}, toStereo([]int16{16384, -16384, 1, 2, 3, 4}, 6))
}
