package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/credlens/credlens/internal/logging"
	"github.com/credlens/credlens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP server",
	Long: `Starts the HTTP API. Analyses are memoized by document fingerprint and,
when requested, persisted to the SQLite store for later retrieval.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("db", "", "analysis store path (default credlens.db)")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("db", serveCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.DefaultConfig()
	if addr := viper.GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if db := viper.GetString("db"); db != "" {
		cfg.DBPath = db
	}
	cfg.Logger = logging.NewStdoutLogger("server")

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	defer srv.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "listening on %s (store: %s)\n", cfg.Addr, cfg.DBPath)
	}
	return srv.ListenAndServe()
}
