package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/corey/neuroatlas/internal/app"
	"github.com/corey/neuroatlas/internal/logger"
	"github.com/spf13/cobra"
)

var (
	serveAtlas   string
	servePort    int
	serveCatalog string
	serveLabels  string
	serveScheme  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the atlas over a localhost HTTP API",
	Long: "Loads the atlas (from the parse cache when unchanged), serves it on 127.0.0.1,\n" +
		"and reloads it whenever the file changes. Runs until SIGINT or SIGTERM.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAtlas, "atlas", "", "Atlas file (default from NATLAS_ATLAS)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (default from NATLAS_HTTP_PORT, else derived from the project path)")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Region catalog (default from NATLAS_CATALOG)")
	serveCmd.Flags().StringVar(&serveScheme, "scheme", "", "Color scheme (default from NATLAS_SCHEME)")
	serveCmd.Flags().StringVar(&serveLabels, "labels", "", "Label file (name id #hex) overriding catalog colors")
}

func runServe(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := app.NewPaths(root)

	if url, ok := serveRunning(paths); ok {
		fmt.Printf("⚡ natlas already serving at %s\n", url)
		return nil
	}

	atlasPath := firstNonEmpty(serveAtlas, cfg.AtlasPath)
	if atlasPath == "" {
		return fmt.Errorf("no atlas file: pass --atlas or set NATLAS_ATLAS")
	}
	port := servePort
	if port == 0 {
		port = cfg.HTTPPort
	}
	atlasName := cfg.AtlasName
	if serveAtlas != "" {
		atlasName = "" // derive from the flag's file
	}

	a, err := app.New(app.Config{
		ProjectRoot: root,
		AtlasPath:   atlasPath,
		AtlasName:   atlasName,
		Catalog:     firstNonEmpty(serveCatalog, cfg.Catalog),
		LabelPath:   serveLabels,
		Scheme:      firstNonEmpty(serveScheme, cfg.Scheme),
		DBPath:      cfg.DBPath,
		HTTPPort:    port,
	})
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	// A missing atlas is not fatal: the watcher loads it once it appears.
	if res, err := a.LoadAtlas(); err != nil {
		logger.L().Warn("atlas_load_error", "path", a.AtlasPath(), "error", err)
	} else {
		fmt.Printf("⚡ atlas %s │ %d vertices │ %d regions%s\n",
			res.Meta.Name, res.Meta.Vertices, res.Meta.Regions, cachedSuffix(res.FromCache))
	}

	if err := a.Start(); err != nil {
		a.Stop()
		return err
	}
	os.WriteFile(paths.PIDFile, []byte(strconv.Itoa(os.Getpid())), 0644)

	fmt.Printf("⚡ natlas serving %s at %s\n", a.AtlasPath(), a.WebServer.URL())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("\n⚡ shutting down...")
	return a.Stop()
}

func cachedSuffix(cached bool) string {
	if cached {
		return fmt.Sprintf(" │ %scached%s", colorGray, colorReset)
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
