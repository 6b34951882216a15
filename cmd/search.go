package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/api"
	"github.com/verible/verible-cli/pkg/trustview"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [profile-url]",
	Short: "Look up a seller and show their trust score",
	Long: `Looks a seller up by profile URL, or by name and platform.

Examples:
  verible search https://jiji.ng/shop/abc
  verible search --name "Jane Doe" --platform ebay
  verible search --name "Jane Doe" --platform jiji --location Lagos`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		platform, _ := cmd.Flags().GetString("platform")
		location, _ := cmd.Flags().GetString("location")
		asJSON, _ := cmd.Flags().GetBool("json")

		client := newAPIClient()

		var result *api.Result
		var err error

		switch {
		case len(args) == 1:
			if !utils.IsProfileURL(args[0]) {
				return fmt.Errorf("'%s' is not a valid profile URL", args[0])
			}
			result, err = client.ExtractProfile(cmd.Context(), args[0])
		case name != "" && platform != "":
			result, err = client.SearchSeller(cmd.Context(), name, platform, location)
		default:
			return fmt.Errorf("provide a profile URL, or --name and --platform")
		}
		if err != nil {
			return err
		}

		utils.Log.Debugf("backend returned a %s payload", result.Kind)
		if result.Kind == api.KindUnknown {
			utils.Log.Warn("backend payload shape not recognized; some fields may be missing")
		}

		view := trustview.Normalize(result.Body, trustview.Context{LoggedIn: client.HasToken()})

		if view.AdditionalMatches > 0 {
			utils.Log.Infof("%d more sellers matched; showing the first one", view.AdditionalMatches)
		}

		if asJSON {
			out, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		trustview.PrintCard(view, time.Now(), colorEnabled())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("name", "n", "", "Seller name")
	searchCmd.Flags().StringP("platform", "p", "", "Marketplace platform key (jiji, ebay, etsy, ...)")
	searchCmd.Flags().StringP("location", "", "", "Seller location (switches to the location search endpoint)")
	searchCmd.Flags().BoolP("json", "j", false, "Print the normalized view as JSON")
}
