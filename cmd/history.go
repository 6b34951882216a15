package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/verible/verible-cli/pkg/history"
)

func openHistoryDB(cmd *cobra.Command) (*history.DB, error) {
	// The dbpath flag is persistent on the parent, so subcommands inherit it.
	dbPath, _ := cmd.Flags().GetString("dbpath")
	if dbPath == "" {
		dbPath = "verible.sqlite"
	}
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("history database not found: %s (run 'verible watch' first)", dbPath)
		}
		return nil, err
	}
	return history.Open(dbPath)
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse locally tracked sellers and score changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")
		search, _ := cmd.Flags().GetString("search")

		db, err := openHistoryDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		sellers, err := db.ListLatest(cmd.Context(), history.ListOptions{
			Platform:     platform,
			SearchFilter: search,
		})
		if err != nil {
			return err
		}

		for _, s := range sellers {
			name := s.Name
			if name == "" {
				name = "Unknown Seller"
			}
			fmt.Printf("%-30s %-10s %3d/100 %-9s %s\n",
				name, s.Platform, s.PulseScore, s.TrustLabel, s.ProfileURL)
		}
		return nil
	},
}

// historyChangesCmd prints recent score movements.
var historyChangesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show recent score changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		db, err := openHistoryDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		changes, err := db.ListRecentChanges(cmd.Context(), limit)
		if err != nil {
			return err
		}

		for _, c := range changes {
			name := c.Name
			if name == "" {
				name = c.ProfileURL
			}
			fmt.Printf("%s  [%s]  %s: %d -> %d\n",
				c.OccurredAt.Format(time.DateTime), c.ChangeType, name, c.OldScore, c.NewScore)
		}
		return nil
	},
}

// historyStatsCmd summarizes tracked sellers per platform.
var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-platform tracking statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%-12s %8s %10s\n", "PLATFORM", "SELLERS", "AVG SCORE")
		for _, s := range stats {
			fmt.Printf("%-12s %8d %10.1f\n", s.Platform, s.SellerCount, s.AvgScore)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyChangesCmd)
	historyCmd.AddCommand(historyStatsCmd)

	historyCmd.PersistentFlags().StringP("dbpath", "", "verible.sqlite", "Path to the history database")
	historyCmd.Flags().StringP("platform", "p", "", "Filter by platform")
	historyCmd.Flags().StringP("search", "s", "", "Filter by seller name or profile URL")
	historyChangesCmd.Flags().IntP("limit", "", 50, "Maximum number of changes to print")
}
