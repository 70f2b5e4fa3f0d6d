package app

import (
	"errors"
	"io/fs"

	"github.com/corey/neuroatlas/internal/logger"
)

// onAtlasChanged rebuilds the index after the watcher reports a change.
// A failed reload keeps serving the previous atlas.
func (a *App) onAtlasChanged(path string) {
	res, err := a.LoadAtlas()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Removed or mid-rename; the create that follows triggers another reload.
			logger.L().Debug("atlas_missing", "path", path)
			return
		}
		logger.L().Warn("atlas_reload_error", "path", path, "error", err)
		return
	}
	logger.L().Info("atlas_reloaded", "atlas", res.Meta.Name, "cached", res.FromCache)
}
