package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/app"
	"github.com/llehouerou/riffle/internal/playlists"
	"github.com/llehouerou/riffle/internal/stderr"
)

func (rt *env) runTUI(*cobra.Command, []string) error {
	// Audio backends write to fd 2 directly; keep that out of the screen.
	if capture, err := stderr.Redirect(rt.log); err != nil {
		rt.log.Warn("stderr capture unavailable", zap.Error(err))
	} else {
		defer capture.Restore()
	}

	mgr, err := rt.openState()
	if err != nil {
		return err
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			rt.log.Warn("close database", zap.Error(err))
		}
	}()

	engine := rt.engine(mgr)
	defer engine.Close()
	stopMPRIS := rt.startMPRIS(engine)
	defer stopMPRIS()

	return app.Run(app.Options{
		Engine:      engine,
		Catalog:     rt.catalog(),
		Playlists:   playlists.New(mgr.DB()),
		Preferences: mgr,
		Announcer:   rt.announcer(),
		Country:     rt.cfg.Country,
		PageSize:    rt.cfg.GetPageSize(),
		Logger:      rt.log,
		Now:         time.Now,
	})
}
