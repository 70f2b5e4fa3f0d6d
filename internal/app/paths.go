package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .natlas/ project directory.
type Paths struct {
	Root string // .natlas/
	DB   string // .natlas/natlas.db

	LogDir   string // .natlas/log/
	ServeLog string // .natlas/log/serve.log

	RunDir   string // .natlas/run/
	PIDFile  string // .natlas/run/serve.pid
	PortFile string // .natlas/run/http.port
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".natlas")
	return &Paths{
		Root: root,
		DB:   filepath.Join(root, "natlas.db"),

		LogDir:   filepath.Join(root, "log"),
		ServeLog: filepath.Join(root, "log", "serve.log"),

		RunDir:   filepath.Join(root, "run"),
		PIDFile:  filepath.Join(root, "run", "serve.pid"),
		PortFile: filepath.Join(root, "run", "http.port"),
	}
}

// EnsureDirs creates all subdirectories under .natlas/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CleanEphemeral removes runtime files (PID file and port file).
// Called on clean shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PIDFile)
	os.Remove(p.PortFile)
}
