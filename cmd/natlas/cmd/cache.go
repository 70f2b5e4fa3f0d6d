package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/corey/neuroatlas/internal/adapters/bbolt"
	"github.com/corey/neuroatlas/internal/app"
	"github.com/spf13/cobra"
)

var (
	cacheJSON      bool
	cacheWipeForce bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the parse cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached atlases",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheWipeCmd = &cobra.Command{
	Use:   "wipe <name>",
	Short: "Delete a cached atlas",
	Long:  "Deletes one cached atlas. The next load reparses the file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheWipe,
}

func init() {
	cacheListCmd.Flags().BoolVar(&cacheJSON, "json", false, "Output as JSON")
	cacheWipeCmd.Flags().BoolVar(&cacheWipeForce, "force", false, "Skip confirmation prompt")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheWipeCmd)
}

// dbPath returns the configured database, or the project default.
func dbPath() string {
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return app.NewPaths(projectRoot()).DB
}

func runCacheList(cmd *cobra.Command, args []string) error {
	path := dbPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Print(formatCacheList(nil))
		return nil
	}

	store, err := bbolt.NewStore(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	metas, err := store.ListAtlases()
	if err != nil {
		return err
	}
	if cacheJSON {
		return printJSON(metas)
	}
	fmt.Print(formatCacheList(metas))
	return nil
}

func runCacheWipe(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !cacheWipeForce {
		fmt.Printf("⚠ This will delete the cached atlas %q. Continue? [y/N] ", name)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	path := dbPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("⚡ no cache to wipe")
		return nil
	}

	store, err := bbolt.NewStore(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.DeleteAtlas(name); err != nil {
		return err
	}
	fmt.Printf("⚡ cached atlas %s wiped\n", name)
	return nil
}
