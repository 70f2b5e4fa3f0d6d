// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the natlas service: create, start, stop.
package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/corey/neuroatlas/internal/adapters/bbolt"
	fsw "github.com/corey/neuroatlas/internal/adapters/fsnotify"
	"github.com/corey/neuroatlas/internal/adapters/web"
	"github.com/corey/neuroatlas/internal/config"
	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/domain/catalog"
	"github.com/corey/neuroatlas/internal/logger"
	"github.com/corey/neuroatlas/internal/ports"
)

// ErrNoAtlas is returned by queries that run before an atlas is loaded.
var ErrNoAtlas = ports.ErrNoAtlas

// App is the top-level container wiring all components together.
type App struct {
	ProjectRoot string
	Paths       *Paths

	Store     ports.Storage
	Watcher   ports.Watcher
	WebServer *web.Server
	Catalogs  map[string]*catalog.Catalog

	atlasPath string // absolute; "" until configured
	atlasName string
	httpPort  int // preferred HTTP port (0 = auto from project root)
	started   time.Time

	catalog   *catalog.Catalog
	searcher  *catalog.Searcher
	structure *catalog.Structure
	table     atlas.ColorTable // catalog or scheme colors merged with label file colors

	current  atomic.Pointer[loadedAtlas]
	reloadMu sync.Mutex // serializes LoadAtlas
	closer   func() error
	stopOnce sync.Once
}

// loadedAtlas is swapped in as a unit so readers never pair one atlas' index
// with another's metadata.
type loadedAtlas struct {
	idx  *atlas.Index
	meta ports.AtlasMeta
}

// Config holds initialization parameters for the App.
type Config struct {
	ProjectRoot string
	AtlasPath   string // atlas text file; may be empty for catalog-only use
	AtlasName   string // cache key (default: atlas file name without extension)
	Catalog     string // region catalog (default: aal)
	Scheme      string // group color scheme; "" keeps per-region catalog colors
	LabelPath   string // optional "name id #hex" file whose colors override the catalog's
	DBPath      string // path to bbolt file (default: .natlas/natlas.db)
	HTTPPort    int    // preferred HTTP port (default: computed from project root)
}

// LoadResult describes one LoadAtlas call.
type LoadResult struct {
	Meta      ports.AtlasMeta
	FromCache bool
	Report    atlas.ParseReport // zero on cache hits
}

// New creates an App with all dependencies wired. Does not start services
// and does not load the atlas; call LoadAtlas for that.
func New(cfg Config) (*App, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	if cfg.Catalog == "" {
		cfg.Catalog = config.DefaultCatalog
	}
	paths := NewPaths(cfg.ProjectRoot)
	if cfg.DBPath == "" {
		cfg.DBPath = paths.DB
	}

	cats, err := LoadCatalogs()
	if err != nil {
		return nil, err
	}
	cat, err := pickCatalog(cats, cfg.Catalog)
	if err != nil {
		return nil, err
	}

	table, err := ColorTableFor(cat, cfg.Scheme, cfg.LabelPath)
	if err != nil {
		return nil, err
	}
	structure, err := LoadStructure()
	if err != nil {
		return nil, err
	}

	var atlasPath string
	if cfg.AtlasPath != "" {
		atlasPath, err = filepath.Abs(cfg.AtlasPath)
		if err != nil {
			return nil, fmt.Errorf("atlas path: %w", err)
		}
		if cfg.AtlasName == "" {
			cfg.AtlasName = config.AtlasNameFromPath(atlasPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	watcher, err := fsw.NewWatcher()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	a := &App{
		ProjectRoot: cfg.ProjectRoot,
		Paths:       paths,
		Store:       store,
		Watcher:     watcher,
		Catalogs:    cats,
		atlasPath:   atlasPath,
		atlasName:   cfg.AtlasName,
		httpPort:    cfg.HTTPPort,
		catalog:     cat,
		searcher:    catalog.NewSearcher(cat, newMatcher),
		structure:   structure,
		table:       table,
		closer:      store.Close,
	}
	a.WebServer = web.NewServer(a, paths.PortFile)
	return a, nil
}

// Start brings up the HTTP API and the atlas watcher. Both are non-fatal:
// failures are logged and the app keeps running without them.
func (a *App) Start() error {
	a.started = time.Now()
	if err := a.Paths.EnsureDirs(); err != nil {
		return fmt.Errorf("create %s: %w", a.Paths.Root, err)
	}

	httpPort := a.httpPort
	if httpPort == 0 {
		httpPort = web.DefaultPort(a.ProjectRoot)
	}
	if err := a.WebServer.Start(httpPort); err != nil {
		logger.L().Warn("http_unavailable", "port", httpPort, "error", err)
	} else {
		logger.L().Info("http_started", "url", a.WebServer.URL())
	}

	if a.atlasPath != "" {
		if err := a.Watcher.Watch(a.atlasPath, a.onAtlasChanged); err != nil {
			logger.L().Warn("watcher_unavailable", "path", a.atlasPath, "error", err)
		}
	}
	return nil
}

// Stop shuts down all services and closes the store. Idempotent.
func (a *App) Stop() error {
	var err error
	a.stopOnce.Do(func() {
		a.Watcher.Stop()
		a.WebServer.Stop()
		a.Paths.CleanEphemeral()
		err = a.closer()
	})
	return err
}

// LoadAtlas reads the configured atlas file and makes it current. The cached
// index is reused when its checksum matches the file; otherwise the text is
// parsed and the cache refreshed. On error the previous atlas stays current.
func (a *App) LoadAtlas() (LoadResult, error) {
	if a.atlasPath == "" {
		return LoadResult{}, fmt.Errorf("no atlas file configured")
	}
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	data, err := os.ReadFile(a.atlasPath)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read atlas: %w", err)
	}
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	if meta, idx, err := a.Store.LoadAtlas(a.atlasName); err != nil {
		// A bad cache entry only costs a reparse.
		logger.L().Warn("atlas_cache_error", "atlas", a.atlasName, "error", err)
	} else if meta != nil && meta.Checksum == checksum && meta.Source == a.atlasPath {
		a.current.Store(&loadedAtlas{idx: idx, meta: *meta})
		logger.L().Info("atlas_loaded", "atlas", meta.Name, "vertices", meta.Vertices,
			"regions", meta.Regions, "cached", true)
		return LoadResult{Meta: *meta, FromCache: true}, nil
	}

	start := time.Now()
	idx, report := atlas.ParseWithReport(string(data))
	meta := ports.AtlasMeta{
		Name:     a.atlasName,
		Source:   a.atlasPath,
		Checksum: checksum,
		ParsedAt: time.Now().Unix(),
		Vertices: idx.Len(),
		Regions:  idx.RegionCount(),
	}
	if err := a.Store.SaveAtlas(meta, idx); err != nil {
		logger.L().Warn("atlas_cache_save_error", "atlas", meta.Name, "error", err)
	}
	a.current.Store(&loadedAtlas{idx: idx, meta: meta})

	logger.L().Info("atlas_loaded",
		"atlas", meta.Name,
		"vertices", meta.Vertices,
		"regions", meta.Regions,
		"lines", report.Lines,
		"skipped", report.Skipped,
		"duration_ms", time.Since(start).Milliseconds(),
		"cached", false,
	)
	if report.Parsed == 0 {
		logger.L().Warn("atlas_empty", "atlas", meta.Name, "path", a.atlasPath)
	}
	return LoadResult{Meta: meta, Report: report}, nil
}

// AtlasPath returns the absolute path of the configured atlas file.
func (a *App) AtlasPath() string { return a.atlasPath }

// Uptime returns how long the app has been started.
func (a *App) Uptime() time.Duration {
	if a.started.IsZero() {
		return 0
	}
	return time.Since(a.started)
}
