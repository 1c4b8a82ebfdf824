// Package cli wires the command-line surface: analyze a report file, or run
// the HTTP server. Configuration follows the usual hierarchy — flags over
// CREDLENS_* environment variables over the config file over defaults.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "credlens",
	Short: "credlens - credit report analysis and FCRA violation scoring",
	Long: `credlens ingests consumer credit report documents (HTML exports or PDFs
from monitoring services and the three bureaus), extracts every reported
item, detects FCRA violations against a fixed rule table, and computes a
deterministic damages estimate and case-strength score.

The engine is rule-based end to end: every violation, dollar figure and
score point is traceable to source evidence, and re-analyzing the same
document always produces the identical result.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("credlens v0.3.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.credlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file and CREDLENS_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.credlens")
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CREDLENS")
	viper.AutomaticEnv()

	viper.SetDefault("db", "credlens.db")
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("hourly_rate", 0.0)

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
	}
}
