// Package config resolves runtime settings from a .env file and the process
// environment. Values already present in the environment win over .env.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvAtlas     = "NATLAS_ATLAS"
	EnvAtlasName = "NATLAS_ATLAS_NAME"
	EnvCatalog   = "NATLAS_CATALOG"
	EnvScheme    = "NATLAS_SCHEME"
	EnvHTTPPort  = "NATLAS_HTTP_PORT"
	EnvDB        = "NATLAS_DB"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// DefaultCatalog is the region catalog used when none is configured.
const DefaultCatalog = "aal"

// Config is the resolved configuration. Zero values mean "use the default
// derived elsewhere" (HTTPPort from the project root, DBPath under .natlas/).
type Config struct {
	AtlasPath string
	AtlasName string
	Catalog   string
	Scheme    string // group color scheme; "" keeps per-region catalog colors
	HTTPPort  int
	DBPath    string
	LogLevel  string
	LogFormat string
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing .env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		AtlasPath: strings.TrimSpace(getenv(EnvAtlas)),
		AtlasName: strings.TrimSpace(getenv(EnvAtlasName)),
		Catalog:   strings.TrimSpace(getenv(EnvCatalog)),
		Scheme:    strings.TrimSpace(getenv(EnvScheme)),
		DBPath:    strings.TrimSpace(getenv(EnvDB)),
		LogLevel:  strings.TrimSpace(getenv(EnvLogLevel)),
		LogFormat: strings.TrimSpace(getenv(EnvLogFormat)),
	}
	if cfg.Catalog == "" {
		cfg.Catalog = DefaultCatalog
	}
	if cfg.AtlasName == "" {
		cfg.AtlasName = AtlasNameFromPath(cfg.AtlasPath)
	}
	if raw := strings.TrimSpace(getenv(EnvHTTPPort)); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("%s: invalid port %q", EnvHTTPPort, raw)
		}
		cfg.HTTPPort = port
	}
	return cfg, nil
}

// AtlasNameFromPath derives a cache key from an atlas file name:
// "/data/lh.aal.txt" -> "lh.aal". Empty path -> "".
func AtlasNameFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
