package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/verible/verible-cli/pkg/trustview"
)

// analyticsCmd represents the analytics command
var analyticsCmd = &cobra.Command{
	Use:   "analytics <seller-id>",
	Short: "Show the analytics panel for your seller account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()
		if !client.HasToken() {
			return fmt.Errorf("analytics requires a session: run 'verible onboard' or set api.token in the config")
		}

		body, err := client.Analytics(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		a := trustview.NormalizeAnalytics(body)

		fmt.Printf("Pulse Score: %d/100 (%s)\n", a.PulseScore, a.TrustLevel)
		fmt.Printf("Confidence: %s  Marketplace verification: %s\n", a.ConfidenceLevel, a.Verification)
		fmt.Printf("Listings: %d total, %d active\n", a.TotalListings, a.ActiveListings)
		fmt.Printf("Community: %d endorsements, %d flags\n", a.TotalEndorsements, a.TotalFlags)
		fmt.Printf("Last scored: %s\n", trustview.RelativeTime(a.LastScored, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}
