package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/verible/verible-cli/pkg/trustview"
)

// feedbackCmd represents the feedback command
var feedbackCmd = &cobra.Command{
	Use:   "feedback <seller-id>",
	Short: "Show community flags and endorsements for a seller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()
		body, err := client.Feedback(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		summary := trustview.NormalizeFeedback(body)

		fmt.Printf("Endorsements: %d  Flags: %d  Net feedback: %+d\n",
			summary.TotalEndorsements, summary.TotalFlags, summary.NetFeedbackScore)
		for _, e := range summary.Endorsements {
			printFeedbackEntry("+", e)
		}
		for _, f := range summary.Flags {
			printFeedbackEntry("!", f)
		}
		return nil
	},
}

func printFeedbackEntry(prefix string, e trustview.FeedbackEntry) {
	line := "  " + prefix + " "
	if e.Reason != "" {
		line += e.Reason
	}
	if e.Comment != "" {
		if e.Reason != "" {
			line += ": "
		}
		line += e.Comment
	}
	if e.CreatedAt != "" {
		line += " (" + trustview.RelativeTime(e.CreatedAt, time.Now()) + ")"
	}
	fmt.Println(line)
}

// flagCmd files a flag against a seller. Requires a session token.
var flagCmd = &cobra.Command{
	Use:   "flag <seller-id>",
	Short: "Flag a seller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		comment, _ := cmd.Flags().GetString("comment")
		if reason == "" {
			return fmt.Errorf("a --reason is required to flag a seller")
		}

		client := newAPIClient()
		if !client.HasToken() {
			return fmt.Errorf("flagging requires a session: run 'verible onboard' or set api.token in the config")
		}
		if err := client.SubmitFlag(cmd.Context(), args[0], reason, comment); err != nil {
			return err
		}
		fmt.Println("Flag submitted.")
		return nil
	},
}

// endorseCmd endorses a seller. Requires a session token.
var endorseCmd = &cobra.Command{
	Use:   "endorse <seller-id>",
	Short: "Endorse a seller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comment, _ := cmd.Flags().GetString("comment")

		client := newAPIClient()
		if !client.HasToken() {
			return fmt.Errorf("endorsing requires a session: run 'verible onboard' or set api.token in the config")
		}
		if err := client.SubmitEndorsement(cmd.Context(), args[0], comment); err != nil {
			return err
		}
		fmt.Println("Endorsement submitted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.AddCommand(flagCmd)
	feedbackCmd.AddCommand(endorseCmd)

	flagCmd.Flags().StringP("reason", "r", "", "Flag reason (scam, counterfeit, no-delivery, ...)")
	flagCmd.Flags().StringP("comment", "c", "", "Optional free-text comment")
	endorseCmd.Flags().StringP("comment", "c", "", "Optional free-text comment")
}
