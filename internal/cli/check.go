package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/furnishop/internal/catalog"
)

// checkCmd validates a catalog fixture the same way serve does at boot. A
// malformed price or duplicate ID fails the whole file, so this gate runs
// in CI before a fixture ships.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a catalog fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("catalog")

		products, err := catalog.Load(path)
		if err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}

		log.Infof("[Check] %s: %d products, all prices valid", path, len(products))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
