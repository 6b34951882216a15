package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/history"
	"github.com/verible/verible-cli/pkg/trustview"
	"github.com/verible/verible-cli/pkg/watch"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [profile-url ...]",
	Short: "Track sellers and record score changes over time",
	Long: `Periodically re-scores the given seller profiles (or the watch.sellers list
from the config file) and records every result in the local history database.
Score movements are printed as they happen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("dbpath")
		interval, _ := cmd.Flags().GetDuration("interval")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		once, _ := cmd.Flags().GetBool("once")

		sellers := args
		if len(sellers) == 0 {
			sellers = viper.GetStringSlice("watch.sellers")
		}
		if len(sellers) == 0 {
			return fmt.Errorf("no sellers to watch: pass profile URLs or set watch.sellers in the config")
		}

		db, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if once {
			interval = 0
		}

		cfg := watch.Config{
			Client:      newAPIClient(),
			DB:          db,
			Sellers:     sellers,
			Interval:    interval,
			Concurrency: concurrency,
			Log:         utils.Log,
			OnSellerDone: func(profileURL string, view *trustview.SellerTrustView, change *history.Change) {
				name := view.DisplayName(trustview.SurfaceCard)
				switch {
				case change == nil:
					utils.Log.Debugf("%s (%s): score unchanged at %d", name, profileURL, view.TrustScore)
				case change.ChangeType == history.ChangeFirstSeen:
					fmt.Printf("[new] %s (%s): %d/100 %s\n", name, view.Platform, view.TrustScore, view.TrustLabel)
				default:
					fmt.Printf("[%s] %s (%s): %d -> %d\n", change.ChangeType, name, view.Platform, change.OldScore, change.NewScore)
				}
			},
		}

		return watch.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("dbpath", "", "verible.sqlite", "Path to the history database")
	watchCmd.Flags().DurationP("interval", "i", 6*time.Hour, "Time between watch passes")
	watchCmd.Flags().IntP("concurrency", "", 3, "Concurrency of scoring requests")
	watchCmd.Flags().BoolP("once", "", false, "Run a single pass and exit")
}
