// Package commands implements the CLI commands for roundsheet.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jcleary/roundsheet/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "roundsheet",
	Short: "Export your Golfshot rounds with per-hole scoring statistics",
	Long: `Roundsheet logs into Golfshot, walks your rounds history, and
exports every round with hole-by-hole scores and scoring statistics
(eagles through triple bogeys) to CSV and JSON.

Examples:
  # Export everything for a profile
  roundsheet export --profile lOJZ5

  # Credentials from the environment, custom output files
  ROUNDSHEET_EMAIL=me@example.com ROUNDSHEET_PASSWORD=... \
      roundsheet export --profile lOJZ5 --csv rounds.csv --json rounds.json

  # Watch the browser while debugging
  roundsheet export --profile lOJZ5 --headful --debug`,
	Version: version.String(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.roundsheet.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".roundsheet")
		viper.SetConfigType("yaml")
	}

	// Environment variables: ROUNDSHEET_EMAIL, ROUNDSHEET_PASSWORD, ...
	viper.SetEnvPrefix("ROUNDSHEET")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
