// Package cmd holds the splitly command line: the API server and its
// operational subcommands.
package cmd

import (
	"os"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "splitly",
	Short: "Shared expense tracking API",
	Long:  `Serve the splitly API, apply its schema migrations and inspect group balances.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.InitLogger()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file; environment variables override its values")
}

// loadConfig reads --config when given, otherwise the environment alone.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadConfigFromFile(configFile)
	}
	return config.LoadConfig()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
