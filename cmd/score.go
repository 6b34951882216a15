package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/trustview"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <profile-url>",
	Short: "Fetch the current Pulse score for a profile URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.IsProfileURL(args[0]) {
			return fmt.Errorf("'%s' is not a valid profile URL", args[0])
		}

		client := newAPIClient()
		result, err := client.ScoreByURL(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		view := trustview.Normalize(result.Body, trustview.Context{LoggedIn: client.HasToken()})
		trustview.PrintCard(view, time.Now(), colorEnabled())
		return nil
	},
}

// recalculateCmd asks the backend to rescore a seller right now.
var recalculateCmd = &cobra.Command{
	Use:   "recalculate <seller-id>",
	Short: "Trigger a fresh scoring run for a seller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()
		result, err := client.Recalculate(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		view := trustview.Normalize(result.Body, trustview.Context{LoggedIn: client.HasToken()})
		trustview.PrintCard(view, time.Now(), colorEnabled())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.AddCommand(recalculateCmd)
}
