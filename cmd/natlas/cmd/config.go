package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/corey/neuroatlas/internal/adapters/web"
	"github.com/corey/neuroatlas/internal/app"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved settings (.env and environment), project paths, and whether natlas serve is running.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := app.NewPaths(root)

	port := cfg.HTTPPort
	portSource := "NATLAS_HTTP_PORT"
	if port == 0 {
		port = web.DefaultPort(root)
		portSource = "derived"
	}

	serveStatus := fmt.Sprintf("%s✗ not running%s", colorYellow, colorReset)
	url, running := serveRunning(paths)
	if running {
		serveStatus = fmt.Sprintf("%s✓ running%s at %s", colorGreen, colorReset, url)
	}

	fmt.Printf("%s⚡ natlas config%s\n", colorBold, colorReset)
	fmt.Printf("  Root:       %s\n", root)
	fmt.Printf("  Atlas:      %s\n", orNone(cfg.AtlasPath))
	fmt.Printf("  Atlas name: %s\n", orNone(cfg.AtlasName))
	fmt.Printf("  Catalog:    %s\n", cfg.Catalog)
	fmt.Printf("  Scheme:     %s\n", orDefault(cfg.Scheme, "catalog colors"))
	fmt.Printf("  DB:         %s\n", dbPath())
	fmt.Printf("  HTTP port:  %d %s(%s)%s\n", port, colorGray, portSource, colorReset)
	fmt.Printf("  Log:        level=%s format=%s\n", orDefault(cfg.LogLevel, "info"), orDefault(cfg.LogFormat, "text"))
	fmt.Printf("  Serve:      %s\n", serveStatus)
	return nil
}

// serveRunning reads the port file and pings /api/health.
func serveRunning(paths *app.Paths) (string, bool) {
	data, err := os.ReadFile(paths.PortFile)
	if err != nil {
		return "", false
	}
	url := "http://localhost:" + strings.TrimSpace(string(data))

	client := &http.Client{Timeout: 500 * time.Millisecond}
	resp, err := client.Get(url + "/api/health")
	if err != nil {
		return "", false
	}
	resp.Body.Close()
	return url, resp.StatusCode == http.StatusOK
}

func orNone(s string) string {
	return orDefault(s, colorGray+"(none)"+colorReset)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
