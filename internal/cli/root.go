// Package cli provides the Cobra-based CLI for shopd.
package cli

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "shopd",
	Short: "Furniture storefront service",
	Long:  "shopd serves the storefront API: catalog browsing, carts, wishlists and orders.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().Bool("log-json", false, "log in JSON format")
	rootCmd.PersistentFlags().String("catalog", "data/catalog.json", "catalog fixture path")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-json", rootCmd.PersistentFlags().Lookup("log-json"))
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))

	viper.SetEnvPrefix("SHOPD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func configureLogging() {
	if viper.GetBool("log-json") {
		log.SetFormatter(&log.JSONFormatter{})
	}

	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
