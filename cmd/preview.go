package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/preview"
)

// previewCmd fetches profile page metadata without scoring anything.
var previewCmd = &cobra.Command{
	Use:   "preview <profile-url>",
	Short: "Preview a profile page before scoring it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.IsProfileURL(args[0]) {
			return fmt.Errorf("'%s' is not a valid profile URL", args[0])
		}

		p, err := preview.NewFetcher().Fetch(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if p.Title != "" {
			fmt.Println("Title:       " + p.Title)
		}
		if p.Description != "" {
			fmt.Println("Description: " + p.Description)
		}
		if p.ImageURL != "" {
			fmt.Println("Image:       " + p.ImageURL)
		}
		if p.Title == "" && p.Description == "" && p.ImageURL == "" {
			fmt.Println("No preview metadata found on that page.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
