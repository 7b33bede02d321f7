package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/catalog"
	"github.com/llehouerou/riffle/internal/mpris"
	"github.com/llehouerou/riffle/internal/notify"
	"github.com/llehouerou/riffle/internal/playback"
	"github.com/llehouerou/riffle/internal/player"
	"github.com/llehouerou/riffle/internal/playlists"
	"github.com/llehouerou/riffle/internal/state"
)

func (rt *env) catalog() *catalog.Client {
	s := rt.cfg.GetCatalogSettings()
	return catalog.New(catalog.Options{
		BaseURL:     s.BaseURL,
		Timeout:     s.Timeout,
		MinInterval: s.MinInterval,
		Logger:      rt.log,
	})
}

func (rt *env) openState() (*state.Manager, error) {
	mgr, err := state.Open(rt.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return mgr, nil
}

func (rt *env) playlists() (*playlists.Playlists, func(), error) {
	mgr, err := rt.openState()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := mgr.Close(); err != nil {
			rt.log.Warn("close database", zap.Error(err))
		}
	}
	return playlists.New(mgr.DB()), closeFn, nil
}

// engineSettings starts from the config and lets saved preferences win.
func (rt *env) engineSettings(prefs state.Interface) playback.Settings {
	s := playback.Settings{
		Volume:   rt.cfg.GetVolume(),
		AutoPlay: rt.cfg.GetAutoPlay(),
		Shuffle:  rt.cfg.Shuffle,
		Logger:   rt.log,
	}
	saved, err := prefs.GetPreferences()
	if err != nil {
		rt.log.Warn("load preferences", zap.Error(err))
		return s
	}
	if saved != nil {
		s.Volume = saved.Volume
		s.AutoPlay = saved.AutoPlay
		s.Shuffle = saved.Shuffle
	}
	return s
}

func (rt *env) engine(prefs state.Interface) *playback.Engine {
	return playback.New(player.NewHTTPOpener(nil, rt.log), rt.engineSettings(prefs))
}

// announcer falls back to a silent announcer when no notification
// service is reachable.
func (rt *env) announcer() *notify.Announcer {
	n, err := notify.New()
	if err != nil {
		rt.log.Info("desktop notifications unavailable", zap.Error(err))
		return notify.NewAnnouncer(nil)
	}
	return notify.NewAnnouncer(n)
}

// startMPRIS exposes e over D-Bus. The returned stop func is never nil.
func (rt *env) startMPRIS(e *playback.Engine) func() {
	a, err := mpris.New(e)
	if err != nil {
		rt.log.Info("MPRIS unavailable", zap.Error(err))
		return func() {}
	}
	return func() {
		if err := a.Close(); err != nil {
			rt.log.Debug("close MPRIS", zap.Error(err))
		}
	}
}
