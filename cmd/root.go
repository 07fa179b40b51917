package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	endpoint int

	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "skiff",
	Short: "Skiff - remote stack and container control",
	Long: `Skiff is a command-line client for a remote container orchestration
service. It starts, stops, and redeploys stacks and containers across the
service's managed endpoints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./skiff.toml)")
	rootCmd.PersistentFlags().IntVar(&endpoint, "endpoint", 0, "endpoint id to target (default: resolve automatically)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config file in standard locations
		viper.SetConfigName("skiff")
		viper.SetConfigType("toml")

		// Current directory (highest priority)
		viper.AddConfigPath(".")

		// User config directory
		if userConfigDir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(userConfigDir + "/skiff")
		}

		// User home directory
		if homeDir, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(homeDir + "/.skiff")
			viper.AddConfigPath(homeDir)
		}

		// System-wide config directories
		viper.AddConfigPath("/etc/skiff")
		viper.AddConfigPath("/usr/local/etc/skiff")
	}

	viper.SetEnvPrefix("skiff")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
	}
}
