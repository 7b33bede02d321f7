package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/riffle/internal/player"
)

func TestSession_StartAppliesVolumeAndPlays(t *testing.T) {
	op := player.NewMockOpener()
	s := NewSession(op, 0.4)

	_, err := s.Start("http://a", SessionEvents{})
	require.NoError(t, err)

	h := op.Last()
	require.NotNil(t, h)
	assert.Equal(t, "http://a", h.URL())
	assert.InDelta(t, 0.4, h.Volume(), 1e-9)
	assert.Equal(t, player.Playing, h.State())
	assert.True(t, s.Active())
}

func TestSession_StartTearsDownPrevious(t *testing.T) {
	op := player.NewMockOpener()
	s := NewSession(op, 1)

	_, err := s.Start("http://a", SessionEvents{})
	require.NoError(t, err)
	first := op.Last()

	_, err = s.Start("http://b", SessionEvents{})
	require.NoError(t, err)

	assert.False(t, first.HasHooks(), "old handle should be detached")
	assert.True(t, first.IsClosed(), "old handle should be closed")
	assert.Len(t, op.Handles(), 2)
}

func TestSession_GenerationGuard(t *testing.T) {
	op := player.NewMockOpener()
	s := NewSession(op, 1)

	var got []uint64
	ev := SessionEvents{Ended: func(gen uint64) { got = append(got, gen) }}

	g1, err := s.Start("http://a", ev)
	require.NoError(t, err)
	stale := op.Last().Hooks().OnEnded

	g2, err := s.Start("http://b", ev)
	require.NoError(t, err)

	stale()
	op.Last().SimulateEnded()

	require.Equal(t, []uint64{g1, g2}, got)
	assert.False(t, s.Live(g1))
	assert.True(t, s.Live(g2))
}

func TestSession_EmptyURL(t *testing.T) {
	op := player.NewMockOpener()
	s := NewSession(op, 1)

	_, err := s.Start("", SessionEvents{})
	assert.ErrorIs(t, err, ErrNoAudio)
	assert.False(t, s.Active())
	assert.Empty(t, op.Handles())
}

func TestSession_OpenError(t *testing.T) {
	op := player.NewMockOpener()
	boom := errors.New("boom")
	op.FailOpen("http://a", boom)
	s := NewSession(op, 1)

	_, err := s.Start("http://a", SessionEvents{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Active())
}

func TestSession_StopIsIdempotent(t *testing.T) {
	op := player.NewMockOpener()
	s := NewSession(op, 1)
	_, err := s.Start("http://a", SessionEvents{})
	require.NoError(t, err)

	s.Stop()
	s.Stop()

	assert.False(t, s.Active())
	assert.True(t, op.Last().IsClosed())
}

func TestSession_TogglePause(t *testing.T) {
	op := player.NewMockOpener()
	s := NewSession(op, 1)

	assert.True(t, s.TogglePause(), "no handle reads as paused")

	_, err := s.Start("http://a", SessionEvents{})
	require.NoError(t, err)
	h := op.Last()

	assert.True(t, s.TogglePause())
	assert.Equal(t, player.Paused, h.State())

	assert.False(t, s.TogglePause())
	assert.Equal(t, player.Playing, h.State())
}

func TestSession_SeekAndVolumeWithoutHandle(t *testing.T) {
	op := player.NewMockOpener()
	s := NewSession(op, 1)

	s.Seek(time.Second)
	s.SetVolume(3)
	assert.InDelta(t, 1.0, s.Volume(), 1e-9)

	s.SetVolume(0.25)
	_, err := s.Start("http://a", SessionEvents{})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, op.Last().Volume(), 1e-9)

	s.Seek(2 * time.Second)
	assert.Equal(t, []time.Duration{2 * time.Second}, op.Last().SeekCalls())
}
